package model

// StatusKind describes the lifecycle of a shop catalog sync run.
type StatusKind string

const (
	StatusUnknown    StatusKind = "unknown"
	StatusProcessing StatusKind = "processing"
	StatusCompleted  StatusKind = "completed"
	StatusError      StatusKind = "error"
)

// Terminal reports whether polling must stop after observing this kind.
func (k StatusKind) Terminal() bool {
	return k == StatusCompleted || k == StatusError
}

// StepState tracks progress of a single pipeline step.
type StepState struct {
	Name     string     `json:"name"`
	Status   StatusKind `json:"status"`
	Progress int        `json:"progress"`
}

// SyncSummary holds counters reported once processing completes.
type SyncSummary struct {
	TotalProductsFetched   int    `json:"total_products_fetched"`
	TotalProductsProcessed int    `json:"total_products_processed"`
	PublishableProducts    int    `json:"publishable_products"`
	NonApparelCount        int    `json:"non_apparel_count"`
	CompletedAt            string `json:"completed_at,omitempty"`
}

// SyncStatus is the processing state of one shop as reported upstream.
// Exactly one of Steps, Summary, ErrorMessage is populated, matching Kind.
type SyncStatus struct {
	Kind         StatusKind   `json:"kind"`
	Stage        string       `json:"stage,omitempty"`
	Progress     int          `json:"progress,omitempty"`
	Steps        []StepState  `json:"steps,omitempty"`
	Summary      *SyncSummary `json:"summary,omitempty"`
	ErrorMessage string       `json:"error,omitempty"`
}

// StatusReport wraps a status query result. NoData marks the upstream 404
// case: a freshly connected shop that has never synced. It is a normal
// state, distinct from both an error and an unknown status payload.
type StatusReport struct {
	NoData bool
	Status *SyncStatus
}
