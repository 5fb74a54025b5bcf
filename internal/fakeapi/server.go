// Package fakeapi is an in-memory implementation of the SkillSwap REST API. It
// backs the client tests and the local development server, and mirrors the
// production backend's responses: acknowledgements for mutations, {"detail"}
// error bodies and server side credit accounting.
package fakeapi

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/skillswap/skillswap/internal/common/httpx"
	"github.com/skillswap/skillswap/internal/common/middleware"
	"github.com/skillswap/skillswap/pkg/types"
)

// DefaultCredits is the balance given to newly registered users.
const DefaultCredits = 60

// Options configures a Server.
type Options struct {
	HandleCORS bool // allow browser front-ends on other origins
}

// Request is a recorded call, kept so tests can assert what a client sent.
type Request struct {
	Route string
	Path  string
	Query url.Values
	Body  []byte
}

type failure struct {
	status int
	detail string
}

// Server is the in-memory API. All methods are safe for concurrent use.
type Server struct {
	Router *chi.Mux

	mu          sync.Mutex
	users       map[int64]*types.User
	skills      map[int64]*types.Skill
	sessions    map[int64]*types.Session
	reviews     []types.Review
	nextUser    int64
	nextSkill   int64
	nextSession int64
	nextReview  int64
	failures    map[string][]failure
	requests    []Request
}

// New creates an empty server with all routes mounted.
func New(opts ...Options) *Server {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	s := &Server{
		Router:   chi.NewRouter(),
		users:    make(map[int64]*types.User),
		skills:   make(map[int64]*types.Skill),
		sessions: make(map[int64]*types.Session),
		failures: make(map[string][]failure),
	}
	s.Router.Use(middleware.RequestLogger)
	s.Router.Use(middleware.PanicHandler)
	if o.HandleCORS {
		s.Router.Use(handleCORS)
	}
	s.mountHandlers(s.Router)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) mountHandlers(r chi.Router) {
	r.Route("/skills", func(r chi.Router) {
		r.Get("/", s.handle("GET /skills", s.listSkills))
		r.Get("/search", s.handle("GET /skills/search", s.searchSkills))
		r.Get("/{id}", s.handle("GET /skills/{id}", s.getSkill))
	})
	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.handle("GET /users", s.listUsers))
		r.Post("/register", s.handle("POST /users/register", s.registerUser))
		r.Get("/{id}", s.handle("GET /users/{id}", s.getUser))
		r.Post("/{id}/skills", s.handle("POST /users/{id}/skills", s.addSkill))
		r.Get("/{id}/sessions", s.handle("GET /users/{id}/sessions", s.userSessions))
		r.Get("/{id}/suggested-skills", s.handle("GET /users/{id}/suggested-skills", s.suggestedSkills))
		r.Get("/{id}/reviews", s.handle("GET /users/{id}/reviews", s.teacherReviews))
	})
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/register", s.handle("POST /sessions/register", s.registerSession))
		r.Get("/{id}", s.handle("GET /sessions/{id}", s.getSession))
		r.Patch("/{id}/status", s.handle("PATCH /sessions/{id}/status", s.updateSessionStatus))
		r.Post("/{id}/review", s.handle("POST /sessions/{id}/review", s.reviewSession))
	})
}

// handle records the call and serves an injected failure if one is queued for route.
func (s *Server) handle(route string, h httpx.RequestHandler) http.HandlerFunc {
	return httpx.WrapHttpRsp(func(r *http.Request) (*httpx.Response, error) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Route: route,
			Path:  r.URL.Path,
			Query: r.URL.Query(),
			Body:  body,
		})
		var injected *failure
		if q := s.failures[route]; len(q) > 0 {
			injected = &q[0]
			s.failures[route] = q[1:]
		}
		s.mu.Unlock()

		if injected != nil {
			return nil, &httpx.Error{StatusCode: injected.status, Description: injected.detail}
		}
		return h(r)
	})
}

// FailNext queues a failure for the next call to route, for example
// "POST /sessions/register". Failures are served in order, once each.
func (s *Server) FailNext(route string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], failure{status: status, detail: detail})
}

// Requests returns the recorded calls to route, oldest first.
func (s *Server) Requests(route string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, r := range s.requests {
		if r.Route == route {
			out = append(out, r)
		}
	}
	return out
}

// AddUser stores u. A zero id is assigned the next free one.
func (s *Server) AddUser(u types.User) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = assignID(u.ID, &s.nextUser)
	u.Skills = nil
	if u.Interests == nil {
		u.Interests = []string{}
	}
	s.users[u.ID] = &u
	return u.ID
}

// AddSkill stores sk. A zero id is assigned the next free one and an empty
// location is taken from the owner.
func (s *Server) AddSkill(sk types.Skill) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertSkill(sk)
}

// AddSession stores se. A zero id is assigned the next free one and an empty
// status becomes pending.
func (s *Server) AddSession(se types.Session) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	se.ID = assignID(se.ID, &s.nextSession)
	if se.Status == "" {
		se.Status = types.StatusPending
	}
	s.sessions[se.ID] = &se
	return se.ID
}

// User returns a copy of the stored user, without skills.
func (s *Server) User(id int64) (types.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return types.User{}, false
	}
	return *u, true
}

// Session returns a copy of the stored session.
func (s *Server) Session(id int64) (types.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	se, ok := s.sessions[id]
	if !ok {
		return types.Session{}, false
	}
	return *se, true
}

// Reviews returns all stored reviews.
func (s *Server) Reviews() []types.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Review(nil), s.reviews...)
}

func (s *Server) insertSkill(sk types.Skill) int64 {
	sk.ID = assignID(sk.ID, &s.nextSkill)
	if sk.Location == "" {
		if owner, ok := s.users[sk.UserID]; ok {
			sk.Location = owner.Location
		}
	}
	if sk.Tags == nil {
		sk.Tags = []string{}
	}
	s.skills[sk.ID] = &sk
	return sk.ID
}

func assignID(id int64, next *int64) int64 {
	if id == 0 {
		*next++
		return *next
	}
	if id > *next {
		*next = id
	}
	return id
}

// sortedSkills returns copies ordered by id. Caller holds s.mu.
func (s *Server) sortedSkills(keep func(*types.Skill) bool) []types.Skill {
	out := make([]types.Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		if keep == nil || keep(sk) {
			out = append(out, *sk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func handleCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
