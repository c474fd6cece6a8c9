package health

// Service reports process health and the feature set this deployment runs
// with.
type Service struct {
	Version   string
	AIEnabled bool
	DBEnabled bool
}

// NewService constructs a new health service.
func NewService(version string, aiEnabled, dbEnabled bool) *Service {
	return &Service{Version: version, AIEnabled: aiEnabled, DBEnabled: dbEnabled}
}

// Status returns the health payload.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"status":  "healthy",
		"version": s.Version,
		"features": map[string]bool{
			"ai_enhanced": s.AIEnabled,
			"database":    s.DBEnabled,
		},
	}
}
