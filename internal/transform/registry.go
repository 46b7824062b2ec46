package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/difal/internal/domain"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PurchaseTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_origin", createSetOrigin)
	registry.Register("set_imported", createSetImported)
	registry.Register("adjust_price", createAdjustPrice)
	registry.Register("set_price", createSetPrice)
	registry.Register("set_freight", createSetFreight)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PurchaseTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s (available: %s)", name, strings.Join(r.List(), ", "))
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_price:supplier=remote,percent=-5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (PurchaseTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseAll parses every spec in order
func (r *TransformRegistry) ParseAll(specs []string) ([]PurchaseTransform, error) {
	transforms := make([]PurchaseTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// Factory functions for each transform

func createSetOrigin(params map[string]string) (PurchaseTransform, error) {
	raw, ok := params["state"]
	if !ok {
		return nil, fmt.Errorf("set_origin requires 'state' parameter")
	}

	state, err := domain.ParseStateCode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid state value: %w", err)
	}

	return &SetOrigin{State: state}, nil
}

func createSetImported(params map[string]string) (PurchaseTransform, error) {
	imported := true
	if raw, ok := params["imported"]; ok {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid imported value: %w", err)
		}
		imported = parsed
	}

	return &SetImported{Imported: imported}, nil
}

func createAdjustPrice(params map[string]string) (PurchaseTransform, error) {
	supplier, err := supplierParam("adjust_price", params)
	if err != nil {
		return nil, err
	}

	percentStr, ok := params["percent"]
	if !ok {
		return nil, fmt.Errorf("adjust_price requires 'percent' parameter")
	}

	percent, err := decimal.NewFromString(percentStr)
	if err != nil {
		return nil, fmt.Errorf("invalid percent value: %w", err)
	}

	return &AdjustPrice{Supplier: supplier, Percent: percent}, nil
}

func createSetPrice(params map[string]string) (PurchaseTransform, error) {
	supplier, err := supplierParam("set_price", params)
	if err != nil {
		return nil, err
	}

	amount, err := amountParam("set_price", params)
	if err != nil {
		return nil, err
	}

	return &SetPrice{Supplier: supplier, Amount: amount}, nil
}

func createSetFreight(params map[string]string) (PurchaseTransform, error) {
	supplier, err := supplierParam("set_freight", params)
	if err != nil {
		return nil, err
	}

	amount, err := amountParam("set_freight", params)
	if err != nil {
		return nil, err
	}

	return &SetFreight{Supplier: supplier, Amount: amount}, nil
}

func supplierParam(name string, params map[string]string) (Supplier, error) {
	raw, ok := params["supplier"]
	if !ok {
		return "", fmt.Errorf("%s requires 'supplier' parameter", name)
	}
	return parseSupplier(strings.ToLower(raw))
}

func amountParam(name string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params["amount"]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires 'amount' parameter", name)
	}
	amount, err := domain.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount value: %w", err)
	}
	return amount, nil
}
