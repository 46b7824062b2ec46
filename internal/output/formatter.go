package output

import "sort"

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

var formatters = map[string]Formatter{}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(JSONFormatter{Pretty: true})
	register(CSVFormatter{})
	register(XLSXFormatter{})
	register(HTMLFormatter{})
}

// GetFormatterByName returns the registered formatter or nil
func GetFormatterByName(name string) Formatter {
	return formatters[name]
}

// FormatterNames lists registered formatter names alphabetically
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBinary reports whether a formatter's output should not go to a terminal
func IsBinary(f Formatter) bool {
	_, ok := f.(XLSXFormatter)
	return ok
}
