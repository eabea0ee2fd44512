package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"architect/internal/adapters/http/middleware"
	"architect/internal/apperr"
	"architect/internal/application/orchestrators"
	"architect/internal/application/projections"
	"architect/internal/domain/session"
	"architect/internal/domain/template"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireSession resolves the authenticated session or writes a 401.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	return sess, true
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/dashboard", handleDashboard)
	mux.HandleFunc("/api/library", handleLibrary)
	mux.HandleFunc("/api/editor", handleEditor)
	mux.HandleFunc("/api/plans", handlePlans)
	mux.HandleFunc("/api/plans/", handlePlanByID)
	mux.HandleFunc("/api/next-workout", handleNextWorkout)
	mux.HandleFunc("/api/sessions", handleSessions)
	mux.HandleFunc("/api/workouts/", handleWorkoutLog)
	mux.HandleFunc("/plans/", handlePlanPage)
}

// --- Auth Handlers ---

// handleLogin handles POST /api/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(),
		orchestrators.LoginInput{Email: req.Email, Password: req.Password},
		orchestrators.LoginDeps{AccountStore: stores.AccountStore, Now: timeNow})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	// First activity for this account: make sure the base library is
	// copied into its scope. A failed sync is a warning, not a login
	// failure; the account just sees a thinner library until retry.
	if err := orchestrators.ExecuteSyncLibrary(r.Context(),
		orchestrators.SyncLibraryInput{Scope: result.AccountID},
		orchestrators.SyncLibraryDeps{
			CatalogStore: stores.CatalogStore,
			Tracker:      syncTracker,
			GenerateID:   generateID,
		}); err != nil {
		slog.Warn("sync_event", "event", "login_sync_failed", "scope", result.AccountID, "error", err)
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{
		"account_id": result.AccountID,
		"email":      result.Email,
		"role":       result.Role,
	})
}

// handleLogout handles POST /api/logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie("architect_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// --- Dashboard ---

// handleDashboard handles GET /api/dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats := projections.QueryDashboard(r.Context(), sess.AccountID, projections.DashboardDeps{
		PlanStore:    stores.PlanStore,
		CatalogStore: stores.CatalogStore,
		SessionStore: stores.SessionStore,
	})
	next, hasNext := projections.QueryNextWorkout(r.Context(), sess.AccountID,
		projections.NextWorkoutDeps{PlanStore: stores.PlanStore})

	resp := map[string]any{
		"plans":           stats.Plans,
		"exercises":       stats.Exercises,
		"categories":      stats.Categories,
		"sessions_logged": stats.SessionsLogged,
	}
	if hasNext {
		resp["up_next"] = map[string]string{
			"workout_id": next.WorkoutID,
			"workout":    next.WorkoutName,
			"week":       next.WeekName,
			"plan":       next.PlanName,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- Library Handlers ---

// handleLibrary handles GET (list) and POST (add exercise) for /api/library
func handleLibrary(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		entries := projections.QueryLibrary(r.Context(), sess.AccountID,
			projections.LibraryDeps{CatalogStore: stores.CatalogStore})
		writeJSON(w, http.StatusOK, entries)

	case "POST":
		var req struct {
			Name       string   `json:"name"`
			Notes      string   `json:"notes"`
			Categories []string `json:"categories"`
		}
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		ex, err := orchestrators.ExecuteAddLibraryExercise(r.Context(),
			orchestrators.AddLibraryExerciseInput{
				Scope:      sess.AccountID,
				Name:       req.Name,
				Notes:      req.Notes,
				Categories: req.Categories,
			},
			orchestrators.AddLibraryExerciseDeps{
				CatalogStore: stores.CatalogStore,
				GenerateID:   generateID,
			})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": ex.ID, "name": ex.Name})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// --- Editor Handlers ---

// editorAction is one mutation of the per-account plan editor.
type editorAction struct {
	Action   string `json:"action"`
	Day      int    `json:"day"`
	Exercise int    `json:"exercise"`
	Set      int    `json:"set"`
	Value    int    `json:"value"`
	Text     string `json:"text"`
}

// handleEditor handles GET (snapshot) and POST (mutate) for /api/editor
func handleEditor(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		writeJSON(w, http.StatusOK, editors.Snapshot(sess.AccountID))

	case "POST":
		var req editorAction
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := applyEditorAction(sess.AccountID, req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, editors.Snapshot(sess.AccountID))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func applyEditorAction(accountID string, req editorAction) error {
	return editors.With(accountID, func(ed *template.Editor) error {
		switch req.Action {
		case "add_day":
			ed.AddDay()
			return nil
		case "remove_day":
			return ed.RemoveDay(req.Day)
		case "rename_day":
			return ed.RenameDay(req.Day, req.Text)
		case "add_exercise":
			return ed.AddExercise(req.Day)
		case "remove_exercise":
			return ed.RemoveExercise(req.Day, req.Exercise)
		case "set_exercise_name":
			return ed.SetExerciseName(req.Day, req.Exercise, req.Text)
		case "set_set_count":
			return ed.SetSetCount(req.Day, req.Exercise, req.Value)
		case "set_rir":
			return ed.SetRIR(req.Day, req.Exercise, req.Set, req.Value)
		case "set_notes":
			return ed.SetNotes(req.Day, req.Exercise, req.Text)
		case "reset":
			ed.Reset()
			return nil
		default:
			return errors.New("unknown editor action")
		}
	})
}

// --- Plan Handlers ---

// handlePlans handles GET (list) and POST (generate) for /api/plans
func handlePlans(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		list := projections.QueryPlanList(r.Context(), sess.AccountID,
			projections.PlanListDeps{PlanStore: stores.PlanStore, Cache: views})
		writeJSON(w, http.StatusOK, list)

	case "POST":
		var req struct {
			Name  string `json:"name"`
			Weeks int    `json:"weeks"`
		}
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		macroID, err := orchestrators.ExecuteGeneratePlan(r.Context(),
			orchestrators.GeneratePlanInput{
				Scope:    sess.AccountID,
				Name:     req.Name,
				NumWeeks: req.Weeks,
				Days:     editors.Snapshot(sess.AccountID),
			},
			orchestrators.GeneratePlanDeps{
				CatalogStore: stores.CatalogStore,
				PlanStore:    stores.PlanStore,
				Views:        views,
				ResetEditor:  func() { editors.Reset(sess.AccountID) },
				GenerateID:   generateID,
				Now:          timeNow,
			})
		var unresolved *orchestrators.UnresolvedExercisesError
		if errors.As(err, &unresolved) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":            "unresolved exercise names",
				"unresolved_names": unresolved.Names,
			})
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"macro_id": macroID})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handlePlanByID handles GET and DELETE for /api/plans/{id}, and POST for
// /api/plans/{id}/email
func handlePlanByID(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/plans/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}
	macroID, tail, _ := strings.Cut(rest, "/")

	if tail == "email" {
		handleEmailPlan(w, r, sess, macroID)
		return
	}
	if tail != "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case "GET":
		detail, found := queryDetail(r, sess.AccountID, macroID)
		if !found {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, detail)

	case "DELETE":
		err := orchestrators.ExecuteDeletePlan(r.Context(),
			orchestrators.DeletePlanInput{Scope: sess.AccountID, MacroID: macroID},
			orchestrators.DeletePlanDeps{PlanStore: stores.PlanStore, Views: views})
		if err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// queryDetail fetches the resolved detail view for one plan.
func queryDetail(r *http.Request, scope, macroID string) (projections.PlanDetail, bool) {
	return projections.QueryPlanDetail(r.Context(), scope, macroID, projections.PlanDetailDeps{
		PlanStore:    stores.PlanStore,
		CatalogStore: stores.CatalogStore,
		Cache:        views,
	})
}

// handleEmailPlan handles POST /api/plans/{id}/email
func handleEmailPlan(w http.ResponseWriter, r *http.Request, sess middleware.Session, macroID string) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if emailSender == nil {
		http.Error(w, "email is not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		To string `json:"to"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.To == "" {
		req.To = sess.Email
	}

	detail, found := queryDetail(r, sess.AccountID, macroID)
	if !found {
		http.NotFound(w, r)
		return
	}
	html, err := projections.RenderPlanHTML(detail)
	if err != nil {
		internalError(w, err)
		return
	}

	err = orchestrators.ExecuteEmailPlan(r.Context(),
		orchestrators.EmailPlanInput{To: req.To, PlanName: detail.Name, HTML: html},
		orchestrators.EmailPlanDeps{Sender: emailSender})
	if errors.Is(err, orchestrators.ErrInvalidRecipient) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// handlePlanPage handles GET /plans/{id} and renders the plan as HTML.
func handlePlanPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	macroID := strings.TrimPrefix(r.URL.Path, "/plans/")
	if macroID == "" || strings.Contains(macroID, "/") {
		http.NotFound(w, r)
		return
	}

	detail, found := queryDetail(r, sess.AccountID, macroID)
	if !found {
		http.NotFound(w, r)
		return
	}
	html, err := projections.RenderPlanHTML(detail)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// --- Session Handlers ---

// handleNextWorkout handles GET /api/next-workout
func handleNextWorkout(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	next, hasNext := projections.QueryNextWorkout(r.Context(), sess.AccountID,
		projections.NextWorkoutDeps{PlanStore: stores.PlanStore})
	if !hasNext {
		writeJSON(w, http.StatusOK, map[string]any{"up_next": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"up_next": map[string]string{
		"workout_id": next.WorkoutID,
		"workout":    next.WorkoutName,
		"week":       next.WeekName,
		"plan":       next.PlanName,
	}})
}

// handleSessions handles POST (log a workout) and GET (logged workout ids)
// for /api/sessions
func handleSessions(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if r.Method == "GET" {
		ids := projections.QueryLoggedWorkouts(r.Context(), sess.AccountID,
			projections.SessionLogDeps{SessionStore: stores.SessionStore})
		logged := make([]string, 0, len(ids))
		for id := range ids {
			logged = append(logged, id)
		}
		sort.Strings(logged)
		writeJSON(w, http.StatusOK, map[string][]string{"logged_workout_ids": logged})
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		WorkoutID string `json:"workout_id"`
		Notes     string `json:"notes"`
		Entries   []struct {
			PlannedExerciseID string `json:"planned_exercise_id"`
			Sets              []struct {
				Reps   int     `json:"reps"`
				Weight float64 `json:"weight"`
				RPE    int     `json:"rpe"`
			} `json:"sets"`
		} `json:"entries"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entries := make([]session.LoggedExercise, 0, len(req.Entries))
	for _, e := range req.Entries {
		entry := session.LoggedExercise{PlannedExerciseID: e.PlannedExerciseID}
		for _, s := range e.Sets {
			entry.Sets = append(entry.Sets, session.LoggedSet{Reps: s.Reps, Weight: s.Weight, RPE: s.RPE})
		}
		entries = append(entries, entry)
	}

	logID, err := orchestrators.ExecuteLogSession(r.Context(),
		orchestrators.LogSessionInput{
			Scope:     sess.AccountID,
			WorkoutID: req.WorkoutID,
			Notes:     req.Notes,
			Entries:   entries,
		},
		orchestrators.LogSessionDeps{
			SessionStore: stores.SessionStore,
			GenerateID:   generateID,
			Now:          timeNow,
		})
	if apperr.IsNotFound(err) {
		// A workout outside the caller's scope reads the same as a missing one.
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"log_id": logID})
}

// handleWorkoutLog handles GET /api/workouts/{id}/log
func handleWorkoutLog(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/workouts/")
	workoutID, tail, _ := strings.Cut(rest, "/")
	if workoutID == "" || tail != "log" {
		http.NotFound(w, r)
		return
	}

	l, found := projections.QuerySessionLog(r.Context(), sess.AccountID, workoutID,
		projections.SessionLogDeps{SessionStore: stores.SessionStore})
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, l)
}
