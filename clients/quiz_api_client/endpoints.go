package quiz_api_client

const (
	// Default base URL for a locally running quiz server
	DefaultBaseURL = "http://localhost:8000"

	// API Endpoints
	HealthEndpoint  = "/api/health"
	RoomsEndpoint   = "/api/rooms"
	GenresEndpoint  = "/api/genres"
	SuggestEndpoint = "/api/suggest"
	CoversEndpoint  = "/api/covers"

	// Headers
	APIKeyHeader = "X-API-Key"

	// Suggestion query limits enforced server-side
	DefaultSuggestLimit = 10
	MaxSuggestLimit     = 20

	// Cover thumbnail variant served by the proxy
	CoverThumbSuffix = ".256.jpg"
)
