package fire

const (
	MessageTimeout        = "Request timed out. Please try again later."
	MessageServiceFailure = "Failed to calculate pension plan. Please check your inputs and try again."
	MessageUnexpected     = "An unexpected error occurred. Please try again later."
)

// Outcome is the terminal state of one calculation call: Success, Timeout,
// ServiceError or Unexpected.
type Outcome interface {
	outcome()
}

// Success holds the decoded body of a 2xx answer. Result is nil when the body
// carried no information.
type Success struct {
	Result *CalculationResult
}

type Timeout struct {
	Err error
}

type ServiceError struct {
	Status int
	Body   string
}

type Unexpected struct {
	Err error
}

func (Success) outcome()      {}
func (Timeout) outcome()      {}
func (ServiceError) outcome() {}
func (Unexpected) outcome()   {}

// Render maps an outcome to the message shown to the user. Failure details
// never reach the text.
func Render(o Outcome) string {
	switch v := o.(type) {
	case Success:
		return Format(v.Result)
	case Timeout:
		return MessageTimeout
	case ServiceError:
		return MessageServiceFailure
	case Unexpected:
		return MessageUnexpected
	default:
		return MessageUnexpected
	}
}
