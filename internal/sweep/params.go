package sweep

// Parameter is one name/value pair of a row.
type Parameter struct {
	Name  string
	Value string
}

// ParameterSet is one row across all value files. Order follows the input
// file order and is significant for folder names and generated files.
type ParameterSet []Parameter

// Names returns the parameter names in order.
func (s ParameterSet) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name
	}
	return names
}

// Get returns the value of the named parameter.
func (s ParameterSet) Get(name string) (string, bool) {
	for _, p := range s {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Rows zips aligned value files into one ParameterSet per line index.
func Rows(files []ValueFile) []ParameterSet {
	if len(files) == 0 {
		return nil
	}
	rows := make([]ParameterSet, len(files[0].Values))
	for i := range rows {
		set := make(ParameterSet, len(files))
		for j, f := range files {
			set[j] = Parameter{Name: f.Name, Value: f.Values[i]}
		}
		rows[i] = set
	}
	return rows
}
