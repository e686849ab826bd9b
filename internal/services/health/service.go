package health

// Service encapsulates health-related checks.
type Service struct {
	sessions func() int
}

// NewService constructs a new health service. sessionCount, when non-nil, feeds Detail.
func NewService(sessionCount func() int) *Service {
	return &Service{sessions: sessionCount}
}

// Status returns the public health payload.
func (s *Service) Status() map[string]string {
	return map[string]string{
		"status":  "OK",
		"message": "Resume Analyzer API is running",
	}
}

// Detail reports internal state for operators (not exposed on the public route).
func (s *Service) Detail() map[string]any {
	out := map[string]any{"status": "OK"}
	if s != nil && s.sessions != nil {
		out["sessions"] = s.sessions()
	}
	return out
}
