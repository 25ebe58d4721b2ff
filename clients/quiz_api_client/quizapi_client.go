package quiz_api_client

import (
	"github.com/tanutb/ManhwaQuiz/clients"
)

// QuizApiClient talks to the quiz server's synchronous HTTP surface: room
// creation and lookup, genre listing, title suggestions, and cover images.
// The live game itself happens over the WebSocket, not here.
type QuizApiClient struct {
	*clients.BaseClient
}

func NewQuizApiClient(baseURL, apiKey string) *QuizApiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &QuizApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(APIKeyHeader, apiKey)

	return client
}
