package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amonks/taskboard/task"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	query, err := parseQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.service.Query(query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if result.Empty() {
		writeJSON(w, http.StatusOK, messageResponse{Message: noTasksMessage})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload taskPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.service.Create(payload.task())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id := formatID(created.ID)
	w.Header().Set("Location", strings.TrimRight(r.URL.Path, "/")+"/"+id)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleCreateBatch(w http.ResponseWriter, r *http.Request) {
	var payloads []taskPayload
	if err := decodeJSON(r, &payloads); err != nil {
		s.writeError(w, r, err)
		return
	}
	tasks := make([]task.Task, len(payloads))
	for i, payload := range payloads {
		tasks[i] = payload.task()
	}
	created, err := s.service.CreateBatch(tasks)
	if err != nil {
		status := statusFor(err)
		s.logRequestError(r, status, err)
		writeJSON(w, status, batchErrorResponse{Error: err.Error(), CreatedTasks: created})
		return
	}
	writeJSON(w, http.StatusCreated, batchResponse{CreatedTasks: created})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	found, err := s.service.Get(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var payload taskPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.service.Update(id, payload.changes())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Task updated successfully", ID: formatID(updated.ID)})
}

func (s *Server) handleDone(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	done, err := s.service.MarkDone(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Task marked as done", ID: formatID(done.ID)})
}

func (s *Server) handleUndone(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	undone, err := s.service.MarkUndone(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Task marked as undone", ID: formatID(undone.ID)})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.service.Delete(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAverages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Averages())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid task id %q", errBadRequest, raw)
	}
	return id, nil
}

// parseQuery reads the list filters. Missing parameters leave the filter unset
// and page defaults to 1.
func parseQuery(values url.Values) (task.Query, error) {
	query := task.Query{
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
		Name:      values.Get("name"),
		Page:      1,
	}
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return task.Query{}, fmt.Errorf("%w: invalid page %q", errBadRequest, raw)
		}
		query.Page = page
	}
	if raw := values.Get("done"); raw != "" {
		done, err := strconv.ParseBool(raw)
		if err != nil {
			return task.Query{}, fmt.Errorf("%w: invalid done filter %q", errBadRequest, raw)
		}
		query.Done = &done
	}
	if raw := values.Get("priority"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return task.Query{}, fmt.Errorf("%w: invalid priority filter %q", errBadRequest, raw)
		}
		query.Priority = task.PriorityPtr(task.Priority(n))
	}
	return query, nil
}
