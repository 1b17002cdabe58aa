package formstate

// FieldView is a snapshot of one field.
type FieldView struct {
	Name    string  `json:"name" yaml:"name"`
	Value   string  `json:"value" yaml:"value"`
	Errors  []Error `json:"errors" yaml:"errors"`
	Touched bool    `json:"touched" yaml:"touched"`
	Focused bool    `json:"focused" yaml:"focused"`
}

// View is the snapshot handed to a rendering layer after a handler call.
// It shares no memory with the FormState it was taken from.
type View struct {
	ID     string      `json:"id" yaml:"id"`
	Form   string      `json:"form" yaml:"form"`
	Fields []FieldView `json:"fields" yaml:"fields"`
	Values Values      `json:"values" yaml:"values"`
	Valid  bool        `json:"valid" yaml:"valid"`
}

// Field returns the snapshot of the named field.
func (v View) Field(name string) (FieldView, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldView{}, false
}

func (f *FieldState) view() FieldView {
	errs := cloneErrors(f.errors)
	if errs == nil {
		errs = []Error{}
	}
	return FieldView{
		Name:    f.name,
		Value:   f.value,
		Errors:  errs,
		Touched: f.touched,
		Focused: f.focused,
	}
}
