package pluginmap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/centraunit/pluginmap"
	"github.com/centraunit/pluginmap/mock"
	"github.com/stretchr/testify/suite"
)

type HTTPTestSuite struct {
	suite.Suite
	container *pluginmap.Container
}

func (s *HTTPTestSuite) SetupTest() {
	c, err := mock.NewRegistry().Build()
	s.Require().NoError(err)
	s.container = c
}

// requestIDMiddleware copies the request id header into the request context.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), mock.RequestIDKey{}, r.Header.Get("X-Request-ID"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HTTPTestSuite) TestContextReachesConstructors() {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ra, err := pluginmap.GetNamedContext[*mock.RequestAware](r.Context(), s.container, "")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-Resolved-ID", ra.RequestID)
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(requestIDMiddleware(handler))
	defer server.Close()

	for _, id := range []string{"req-1", "req-2"} {
		req, _ := http.NewRequest("GET", server.URL, nil)
		req.Header.Set("X-Request-ID", id)
		resp, err := http.DefaultClient.Do(req)
		s.Require().NoError(err)
		resp.Body.Close()
		s.Equal(http.StatusOK, resp.StatusCode)
		s.Equal(id, resp.Header.Get("X-Resolved-ID"))
	}
}

func (s *HTTPTestSuite) TestUntypedContextQuery() {
	ctx := context.WithValue(context.Background(), mock.RequestIDKey{}, "direct")
	v, err := s.container.GetInstanceContext(ctx, mock.RequestAwareType)
	s.Require().NoError(err)
	s.Equal("direct", v.(*mock.RequestAware).RequestID)

	v, err = s.container.GetInstance(mock.RequestAwareType)
	s.Require().NoError(err)
	s.Empty(v.(*mock.RequestAware).RequestID)
}

func TestHTTPSuite(t *testing.T) {
	suite.Run(t, new(HTTPTestSuite))
}
