package models

// Namespace selects one of the two independent configuration key spaces.
type Namespace string

const (
	// NamespaceServer holds admin-only settings, some of them secret.
	NamespaceServer Namespace = "server"
	// NamespaceClient holds public site settings.
	NamespaceClient Namespace = "client"
)

// Valid reports whether n is a known namespace.
func (n Namespace) Valid() bool {
	return n == NamespaceServer || n == NamespaceClient
}

func (n Namespace) String() string {
	return string(n)
}

// ConfigMap is a set of configuration entries keyed by their dot-separated
// key. Values are decoded JSON: string, float64, bool, nil, or for opaque
// keys any JSON value.
type ConfigMap map[string]any

// Clone returns a shallow copy of m.
func (m ConfigMap) Clone() ConfigMap {
	out := make(ConfigMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// AITestRequest carries the parameters of a one-off AI provider call made
// from the admin panel. Empty fields are filled from the stored server
// configuration.
type AITestRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIURL   string `json:"api_url"`
	APIKey   string `json:"api_key"`
	Prompt   string `json:"prompt"`
	Content  string `json:"content"`
}

// AITestResult is what the provider answered to an AITestRequest.
type AITestResult struct {
	Provider         string `json:"provider"`
	Model            string `json:"model"`
	Response         string `json:"response"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	DurationMS       int64  `json:"duration_ms"`
}

// ConfigUpdate is a partial update of one namespace.
type ConfigUpdate struct {
	Namespace Namespace
	Entries   ConfigMap
}
