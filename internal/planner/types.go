package planner

// Options is the catalog payload served by the planner service: majors under
// dropdown1 and minors under dropdown2.
type Options struct {
	Majors []string `json:"dropdown1" yaml:"dropdown1"`
	Minors []string `json:"dropdown2" yaml:"dropdown2"`
}

// Selections is the submit payload. It mirrors Options field for field.
type Selections struct {
	Majors []string `json:"dropdown1"`
	Minors []string `json:"dropdown2"`
}

func (s Selections) normalized() Selections {
	if s.Majors == nil {
		s.Majors = []string{}
	}
	if s.Minors == nil {
		s.Minors = []string{}
	}
	return s
}

func (o Options) normalized() Options {
	if o.Majors == nil {
		o.Majors = []string{}
	}
	if o.Minors == nil {
		o.Minors = []string{}
	}
	return o
}
