package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cloudstub/cloudstub/pkg/cursor"
	"github.com/cloudstub/cloudstub/pkg/filter"
	"github.com/cloudstub/cloudstub/pkg/functions"
	"github.com/cloudstub/cloudstub/pkg/logs"
	"github.com/cloudstub/cloudstub/pkg/objectstore"
	"github.com/cloudstub/cloudstub/pkg/tenant"
)

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError maps a store error onto the wire. Typed store errors carry
// their own status code and hint; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var coded logs.StatusCodeError
	if errors.As(err, &coded) {
		resp := ErrorResponse{Error: err.Error()}
		type hinter interface{ Hint() string }
		if h, ok := coded.(hinter); ok {
			resp.Hint = h.Hint()
		}
		writeJSON(w, coded.StatusCode(), resp)
		return
	}
	if errors.Is(err, cursor.ErrInvalidToken) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Hint:  "Pagination tokens are single-use. Restart the listing without a token.",
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Detail: err.Error()})
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &logs.ValidationError{Message: fmt.Sprintf("malformed request body: %v", err)}
	}
	return nil
}

// queryInt parses an integer query parameter, 0 when absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &logs.ValidationError{Field: name, Message: "must be an integer"}
	}
	return v, nil
}

// queryMillis parses an optional millisecond timestamp parameter.
func queryMillis(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &logs.ValidationError{Field: name, Message: "must be a millisecond timestamp"}
	}
	return &v, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Uptime: s.Uptime().String()})
}

func (s *Server) handleAppendGroups(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Groups []logs.Group `json:"logGroups"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	s.logs.AppendGroups(tenant.FromRequest(r), body.Groups)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.logs.ListGroups(tenant.FromRequest(r), logs.ListGroupsInput{
		NextToken: r.URL.Query().Get("nextToken"),
		Limit:     limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAppendStreams(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Streams []logs.Stream `json:"logStreams"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	s.logs.AppendStreams(tenant.FromRequest(r), r.PathValue("group"), body.Streams)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListStreams(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	out, err := s.logs.ListStreams(tenant.FromRequest(r), r.PathValue("group"), logs.ListStreamsInput{
		OrderBy:    q.Get("orderBy"),
		Descending: q.Get("descending") == "true",
		Prefix:     q.Get("prefix"),
		NextToken:  q.Get("nextToken"),
		Limit:      limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAppendEvents(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Events []logs.Event `json:"events"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	// Reject the obvious caller mistakes at the edge; the store treats
	// them as fatal preconditions, not recoverable input.
	if len(body.Events) == 0 {
		writeError(w, &logs.ValidationError{Field: "events", Message: "at least one event is required"})
		return
	}
	for i, e := range body.Events {
		if e.Message == "" {
			writeError(w, &logs.ValidationError{Field: fmt.Sprintf("events[%d].message", i), Message: "a message is required"})
			return
		}
	}
	err := s.logs.AppendEvents(tenant.FromRequest(r), r.PathValue("group"), r.PathValue("stream"), body.Events)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQueryEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	start, err := queryMillis(r, "startTime")
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := queryMillis(r, "endTime")
	if err != nil {
		writeError(w, err)
		return
	}

	in := logs.QueryEventsInput{
		StartTime: start,
		EndTime:   end,
		NextToken: r.URL.Query().Get("nextToken"),
		Limit:     limit,
	}
	if src := r.URL.Query().Get("filter"); src != "" {
		match, err := filter.Compile(src)
		if err != nil {
			writeError(w, &logs.ValidationError{Field: "filter", Message: err.Error()})
			return
		}
		in.Match = match
	}

	out, err := s.logs.QueryEvents(tenant.FromRequest(r), r.PathValue("group"), r.PathValue("stream"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAppendObjects(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Objects []objectstore.Object `json:"objects"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	s.objects.AppendObjects(tenant.FromRequest(r), r.PathValue("bucket"), body.Objects)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListObjects(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.objects.ListObjects(tenant.FromRequest(r), r.PathValue("bucket"), objectstore.ListObjectsInput{
		Prefix:    r.URL.Query().Get("prefix"),
		NextToken: r.URL.Query().Get("nextToken"),
		Limit:     limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAppendFunctions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Functions []functions.Function `json:"functions"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	s.functions.Append(tenant.FromRequest(r), body.Functions)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFunctions(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.functions.List(tenant.FromRequest(r), functions.ListInput{
		NextToken: r.URL.Query().Get("nextToken"),
		Limit:     limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
