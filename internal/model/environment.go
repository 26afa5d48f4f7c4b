package model

// Environment is a partner environment as returned by the regional
// provisioning API, annotated with the region it was found in.
// This is a pure domain model with no transport-specific dependencies.
type Environment struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Deployment is one deployment inside an environment. State is the raw
// value reported by the partner API ("Primary" marks the active one).
type Deployment struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}
