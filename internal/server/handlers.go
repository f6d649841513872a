package server

import (
	"errors"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/fitstack/fitledger/internal/apperr"
	"github.com/fitstack/fitledger/internal/ledger"
	"github.com/fitstack/fitledger/internal/storage"
	"github.com/fitstack/fitledger/internal/xslog"
)

// Handler exposes the ledger operations over HTTP for a paired device
// or sync client. The ledger serializes mutations internally, so
// handlers call straight into it.
type Handler struct {
	ledger *ledger.Ledger
	store  storage.Store
}

func NewHandler(l *ledger.Ledger, store storage.Store) *Handler {
	return &Handler{ledger: l, store: store}
}

func decode[T any](r *http.Request, dst *T) error {
	if err := go_json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.BadRequest("invalid_request", "malformed JSON body")
	}
	return nil
}

// writeLedgerError maps ledger failures onto the HTTP error taxonomy.
// Persist failures are not mapped here: the in-memory mutation stands,
// so handlers log them and answer with the mutated state. A transient
// persistence failure never blocks interaction.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrSessionConflict):
		apperr.WriteError(w, apperr.Conflict("session_conflict", "a workout session is already active"))
	case errors.Is(err, ledger.ErrNoActiveSession):
		apperr.WriteError(w, apperr.Conflict("no_active_session", "no workout session is active"))
	default:
		apperr.WriteError(w, err)
	}
}

// logPersistFailure records a failed write-through without failing the
// request. In-memory state is authoritative for the current process.
func logPersistFailure(r *http.Request, err error) {
	if err == nil {
		return
	}
	var persistErr *ledger.PersistError
	if errors.As(err, &persistErr) {
		xslog.FromContext(r.Context()).WarnContext(r.Context(),
			"write-through failed, in-memory state retained",
			xslog.Key(persistErr.Key), xslog.Error(err))
		return
	}
	xslog.FromContext(r.Context()).WarnContext(r.Context(),
		"write-through failed, in-memory state retained", xslog.Error(err))
}

type addWaterRequest struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type waterResponse struct {
	Entry      ledger.WaterEntry `json:"entry"`
	TodayFlOz  float64           `json:"today_floz"`
	GoalFlOz   float64           `json:"goal_floz"`
	GoalStatus float64           `json:"goal_progress"`
}

func (h *Handler) HandleAddWater(w http.ResponseWriter, r *http.Request) {
	var req addWaterRequest
	if err := decode(r, &req); err != nil {
		apperr.WriteError(w, err)
		return
	}
	if req.Amount <= 0 {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", "amount must be positive"))
		return
	}
	unit, err := ledger.ParseVolumeUnit(req.Unit)
	if err != nil {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", err.Error()))
		return
	}

	entry, err := h.ledger.AddWaterEntry(r.Context(), req.Amount, unit)
	logPersistFailure(r, err)

	resp := waterResponse{Entry: entry, TodayFlOz: h.ledger.TodayWaterIntake()}
	if goal, ok := h.ledger.Goal(ledger.GoalWater); ok {
		resp.GoalFlOz = goal.Target
		resp.GoalStatus = goal.Progress()
	}
	apperr.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) HandleTodayWater(w http.ResponseWriter, r *http.Request) {
	apperr.WriteOK(w, map[string]float64{"today_floz": h.ledger.TodayWaterIntake()})
}

type addBodyMetricRequest struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func (h *Handler) HandleAddBodyMetric(w http.ResponseWriter, r *http.Request) {
	var req addBodyMetricRequest
	if err := decode(r, &req); err != nil {
		apperr.WriteError(w, err)
		return
	}
	kind, err := ledger.ParseBodyMetricKind(req.Kind)
	if err != nil {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", err.Error()))
		return
	}

	entry, err := h.ledger.AddBodyMetric(r.Context(), kind, req.Value, req.Unit)
	logPersistFailure(r, err)
	apperr.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) HandleLatestBodyMetric(w http.ResponseWriter, r *http.Request) {
	kind, err := ledger.ParseBodyMetricKind(r.URL.Query().Get("kind"))
	if err != nil {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", err.Error()))
		return
	}

	entry, ok := h.ledger.LatestBodyMetric(kind)
	if !ok {
		apperr.WriteError(w, apperr.NotFound("not_found", "no entry of that kind"))
		return
	}
	apperr.WriteOK(w, entry)
}

type addQuickLogRequest struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
	Note  *string `json:"note"`
}

func (h *Handler) HandleAddQuickLog(w http.ResponseWriter, r *http.Request) {
	var req addQuickLogRequest
	if err := decode(r, &req); err != nil {
		apperr.WriteError(w, err)
		return
	}
	kind, err := ledger.ParseQuickLogKind(req.Kind)
	if err != nil {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", err.Error()))
		return
	}

	entry, err := h.ledger.AddQuickLog(r.Context(), kind, req.Value, req.Note)
	logPersistFailure(r, err)
	apperr.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) HandleListQuickLogs(w http.ResponseWriter, r *http.Request) {
	apperr.WriteOK(w, h.ledger.TodayQuickLogs())
}

func (h *Handler) HandleGoals(w http.ResponseWriter, r *http.Request) {
	apperr.WriteOK(w, h.ledger.Goals())
}

type updateGoalRequest struct {
	Kind    string  `json:"kind"`
	Current float64 `json:"current"`
}

func (h *Handler) HandleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req updateGoalRequest
	if err := decode(r, &req); err != nil {
		apperr.WriteError(w, err)
		return
	}
	kind, err := ledger.ParseGoalKind(req.Kind)
	if err != nil {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", err.Error()))
		return
	}

	logPersistFailure(r, h.ledger.UpdateGoalProgress(r.Context(), kind, req.Current))

	if goal, ok := h.ledger.Goal(kind); ok {
		apperr.WriteOK(w, goal)
		return
	}
	apperr.WriteError(w, apperr.NotFound("not_found", "no goal of that kind"))
}

type startSessionRequest struct {
	WorkoutID string `json:"workout_id"`
	Name      string `json:"name"`
	Activity  string `json:"activity"`
}

func (h *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decode(r, &req); err != nil {
		apperr.WriteError(w, err)
		return
	}

	activity := ledger.ActivityKind(req.Activity)
	if activity == "" {
		activity = ledger.ActivityOther
	}

	session, err := h.ledger.StartWorkoutSession(r.Context(), ledger.Workout{
		ID:       req.WorkoutID,
		Name:     req.Name,
		Activity: activity,
	})
	if errors.Is(err, ledger.ErrSessionConflict) {
		writeLedgerError(w, err)
		return
	}
	logPersistFailure(r, err)
	apperr.WriteJSON(w, http.StatusCreated, session)
}

func (h *Handler) HandleEndSession(w http.ResponseWriter, r *http.Request) {
	workout, err := h.ledger.EndWorkoutSession(r.Context())
	logPersistFailure(r, err)
	if workout == nil {
		apperr.WriteNoContent(w)
		return
	}
	apperr.WriteOK(w, workout)
}

type heartRateRequest struct {
	BPM float64 `json:"bpm"`
}

func (h *Handler) HandleHeartRate(w http.ResponseWriter, r *http.Request) {
	var req heartRateRequest
	if err := decode(r, &req); err != nil {
		apperr.WriteError(w, err)
		return
	}
	if req.BPM <= 0 {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", "bpm must be positive"))
		return
	}

	err := h.ledger.AddHeartRateSample(r.Context(), req.BPM)
	if errors.Is(err, ledger.ErrNoActiveSession) {
		writeLedgerError(w, err)
		return
	}
	logPersistFailure(r, err)
	apperr.WriteNoContent(w)
}

type energyRequest struct {
	Kilocalories float64 `json:"kilocalories"`
}

func (h *Handler) HandleEnergy(w http.ResponseWriter, r *http.Request) {
	var req energyRequest
	if err := decode(r, &req); err != nil {
		apperr.WriteError(w, err)
		return
	}

	err := h.ledger.AddEnergySample(r.Context(), req.Kilocalories)
	if errors.Is(err, ledger.ErrNoActiveSession) {
		writeLedgerError(w, err)
		return
	}
	logPersistFailure(r, err)
	apperr.WriteNoContent(w)
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.ledger.ActiveSession()
	if !ok {
		apperr.WriteError(w, apperr.NotFound("not_found", "no workout session is active"))
		return
	}

	apperr.WriteOK(w, map[string]any{
		"session":            session,
		"average_heart_rate": session.AverageHeartRate(),
	})
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	apperr.WriteOK(w, h.ledger.Stats())
}

func (h *Handler) HandleWorkouts(w http.ResponseWriter, r *http.Request) {
	apperr.WriteOK(w, h.ledger.RecentWorkouts())
}

type syncRequest struct {
	Stats         ledger.UserStats `json:"stats"`
	Workouts      []ledger.Workout `json:"workouts"`
	SyncTimestamp time.Time        `json:"sync_timestamp"`
}

func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := decode(r, &req); err != nil {
		apperr.WriteError(w, err)
		return
	}
	if req.SyncTimestamp.IsZero() {
		apperr.WriteError(w, apperr.BadRequest("invalid_request", "sync_timestamp is required"))
		return
	}

	logPersistFailure(r, h.ledger.UpdateFromSync(r.Context(), req.Stats, req.Workouts, req.SyncTimestamp))
	apperr.WriteNoContent(w)
}

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	apperr.WriteOK(w, h.ledger.ExportForSync())
}

func (h *Handler) HandleClearData(w http.ResponseWriter, r *http.Request) {
	logPersistFailure(r, h.ledger.ClearAllData(r.Context()))
	apperr.WriteNoContent(w)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		apperr.WriteError(w, apperr.ServiceUnavailable("store_unavailable", "storage backend unreachable"))
		return
	}
	apperr.WriteOK(w, map[string]string{"status": "ok"})
}
