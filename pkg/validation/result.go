package validation

// Outcome is the tri-state result of one evaluation.
type Outcome int

const (
	// Pass is a silent pass: nothing to display.
	Pass Outcome = iota
	// Success passes and carries the configured success message.
	Success
	// Fail carries the message explaining which rule failed.
	Fail
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Success:
		return "success"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Rule names the check that decided a result.
type Rule string

const (
	RuleNone     Rule = ""
	RuleCheck    Rule = "check"
	RuleType     Rule = "type"
	RuleRequired Rule = "required"
	RuleLength   Rule = "length"
	RuleReg      Rule = "reg"
	RuleNumber   Rule = "number"
	RuleMin      Rule = "min"
	RuleMax      Rule = "max"
	RuleRange    Rule = "range"
	RuleCompare  Rule = "compare"
	RuleCustom   Rule = "custom"
)

// Result is the outcome of evaluating a value against a constraint set.
type Result struct {
	Outcome Outcome
	Message string
	Rule    Rule
	// Skipped is set when no evaluation happened: the master switch is off or
	// the configuration is unusable. Skipped results never count as a
	// validation run for callbacks.
	Skipped bool
}

// Valid reports whether the value passed.
func (r Result) Valid() bool {
	return r.Outcome != Fail
}

// HasMessage reports whether the result carries something to display.
func (r Result) HasMessage() bool {
	return r.Outcome != Pass
}
