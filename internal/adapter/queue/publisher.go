package queue

// Subjects of the domain events the command core emits. Downstream
// consumers (notification senders, dashboards) subscribe on their own
// connections; this service only ever publishes.
const (
	SubjectRecordSaved       = "care.record.saved"
	SubjectStaffCalled       = "care.staff.called"
	SubjectEmergencyReported = "care.emergency.reported"
)

// Publisher delivers domain events to downstream consumers. Delivery is
// fire-and-forget from the command core's point of view: a failed
// publish is logged by the caller and never changes an outcome.
type Publisher interface {
	Publish(subject string, data []byte) error
	Close() error
}
