package model

// Severity selects the visual treatment of a status badge.
type Severity string

const (
	SeverityNeutral Severity = "neutral"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// StatusDescriptor is a display-ready view of a status kind. LabelKey is an
// i18n catalog key; rendering stays with the frontend.
type StatusDescriptor struct {
	LabelKey string   `json:"label_key"`
	Severity Severity `json:"severity"`
}

var statusDescriptors = map[StatusKind]StatusDescriptor{
	StatusUnknown:    {LabelKey: "sync.status.unknown", Severity: SeverityNeutral},
	StatusProcessing: {LabelKey: "sync.status.processing", Severity: SeverityInfo},
	StatusCompleted:  {LabelKey: "sync.status.completed", Severity: SeveritySuccess},
	StatusError:      {LabelKey: "sync.status.error", Severity: SeverityDanger},
}

// DescribeStatus maps a status kind to its display descriptor. Unrecognized
// kinds fall back to the unknown descriptor, keeping the function total.
func DescribeStatus(kind StatusKind) StatusDescriptor {
	if d, ok := statusDescriptors[kind]; ok {
		return d
	}
	return statusDescriptors[StatusUnknown]
}
