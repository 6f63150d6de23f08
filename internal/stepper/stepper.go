package stepper

// Authoring steps, in order.
const (
	StepBasics = iota + 1
	StepPayoutBudget
	StepRequirements
	StepDosDonts
	StepAssetsBranding
	StepTargeting
	StepReviewPublish
)

const (
	FirstStep = StepBasics
	LastStep  = StepReviewPublish
)

type Step struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var Steps = []Step{
	{ID: StepBasics, Title: "Basics", Description: "Campaign fundamentals"},
	{ID: StepPayoutBudget, Title: "Payout & Budget", Description: "Financial details"},
	{ID: StepRequirements, Title: "Requirements", Description: "Creator criteria"},
	{ID: StepDosDonts, Title: "Do's & Don'ts", Description: "Content guidelines"},
	{ID: StepAssetsBranding, Title: "Assets & Branding", Description: "Visual elements"},
	{ID: StepTargeting, Title: "Targeting", Description: "Audience & reach"},
	{ID: StepReviewPublish, Title: "Review & Publish", Description: "Final review"},
}

// Navigator tracks the current authoring step. Every step is reachable
// from every other one; completion is positional only.
type Navigator struct {
	current int
}

func New(current int) *Navigator {
	return &Navigator{current: clamp(current)}
}

func (n *Navigator) Current() int {
	return n.current
}

func (n *Navigator) Next() int {
	n.current = clamp(n.current + 1)
	return n.current
}

func (n *Navigator) Previous() int {
	n.current = clamp(n.current - 1)
	return n.current
}

// GoTo jumps to step, clamped to the valid range.
func (n *Navigator) GoTo(step int) int {
	n.current = clamp(step)
	return n.current
}

// Completed reports whether step sits before the current one.
// It says nothing about whether that step's fields are valid.
func (n *Navigator) Completed(step int) bool {
	return step >= FirstStep && step < n.current
}

func (n *Navigator) CanPublish() bool {
	return n.current == LastStep
}

func (n *Navigator) IsLast() bool {
	return n.current == LastStep
}

// StepState is the stepper projection returned to clients.
type StepState struct {
	Current    int    `json:"current"`
	Total      int    `json:"total"`
	Completed  []int  `json:"completed"`
	Steps      []Step `json:"steps"`
	CanPublish bool   `json:"can_publish"`
}

func (n *Navigator) State() StepState {
	completed := make([]int, 0, n.current-1)
	for _, s := range Steps {
		if n.Completed(s.ID) {
			completed = append(completed, s.ID)
		}
	}
	return StepState{
		Current:    n.current,
		Total:      LastStep,
		Completed:  completed,
		Steps:      Steps,
		CanPublish: n.CanPublish(),
	}
}

func IsValid(step int) bool {
	return step >= FirstStep && step <= LastStep
}

func clamp(step int) int {
	if step < FirstStep {
		return FirstStep
	}
	if step > LastStep {
		return LastStep
	}
	return step
}
