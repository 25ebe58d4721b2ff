package quiz_api_client

import (
	"net/http"
	"net/url"
	"strings"
)

// CoverPath builds the proxy path for a question's cover image. Filenames
// that are not already a thumbnail variant get the 256px suffix appended.
func CoverPath(mangaID, coverFilename string) string {
	file := coverFilename
	if !strings.Contains(file, ".256.") {
		file += CoverThumbSuffix
	}
	return CoversEndpoint + "/" + url.PathEscape(mangaID) + "/" + url.PathEscape(file)
}

// CoverURL returns the absolute URL of a cover image on this client's server.
func (c *QuizApiClient) CoverURL(mangaID, coverFilename string) string {
	return c.BaseURL() + CoverPath(mangaID, coverFilename)
}

// FetchCover downloads a cover image through the API proxy. Failures map to
// nil; the caller renders a placeholder instead.
func (c *QuizApiClient) FetchCover(mangaID, coverFilename string) []byte {
	body, status, err := c.Get(CoverPath(mangaID, coverFilename))
	if err != nil || status != http.StatusOK {
		return nil
	}
	return body
}
