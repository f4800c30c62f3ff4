package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"fraudrisk/history"
	"fraudrisk/scoring"
	"fraudrisk/util"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// evaluation is one scored request. Failed is set when the amount could not be read,
// in which case Result is the zero-risk error result and the echoed fields are blank.
type evaluation struct {
	Input  util.TransactionInput
	Time   scoring.ParsedTime
	Result util.RiskResult
	Failed bool
}

func (s *Server) evaluate(rawAmount, rawTime, rawType string) evaluation {
	amount, err := util.ParseAmount(rawAmount)
	if err != nil {
		s.metrics.fail("amount")
		return evaluation{Result: util.ErrorResult(err), Failed: true}
	}

	parsed := scoring.ParseTimestamp(rawTime)
	input := util.TransactionInput{
		Amount:          amount,
		Hour:            parsed.Hour,
		TransactionType: util.NormalizeType(rawType),
	}

	result := scoring.ScoreInput(input)
	s.metrics.observe(result.Verdict, scoring.Channel(input.TransactionType), result.RiskPercent)

	return evaluation{Input: input, Time: parsed, Result: result}
}

// alertDue reports whether an assessment is published. A risk equal to the threshold alerts.
func (s *Server) alertDue(riskPercent float64) bool {
	return s.cfg.Services.Nats.Enabled && riskPercent >= s.cfg.Alerts.Threshold
}

// record stores the assessment and raises an alert in the background. Failures are logged only.
// The goroutine is tracked so Wait can drain it on shutdown.
func (s *Server) record(requestID string, ev evaluation) uuid.UUID {
	assessment := util.NewAssessment(ev.Input, ev.Time.Raw, ev.Result)
	publish := s.alertDue(ev.Result.RiskPercent)

	if !history.Enabled() && !publish {
		return assessment.ID
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.sideEffectTimeout)
		defer cancel()

		if history.Enabled() {
			if err := history.Record(ctx, assessment); err != nil {
				s.metrics.fail("history")
				s.logger.Warn("could not record assessment", "request_id", requestID, "assessment_id", assessment.ID, "error", err)
			}
		}

		if publish {
			if err := util.PublishAlert(s.cfg.Services.Nats.Subject, assessment); err != nil {
				s.metrics.fail("alert")
				s.logger.Warn("could not publish alert", "request_id", requestID, "assessment_id", assessment.ID, "error", err)
				return
			}
			s.logger.Info("alert published", "assessment_id", assessment.ID, "risk", assessment.RiskPercent)
		}
	}()

	return assessment.ID
}

type indexPage struct {
	Types []string
}

func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	page := indexPage{Types: []string{
		util.TransactionTypes.UPI,
		util.TransactionTypes.Card,
		util.TransactionTypes.International,
		util.TransactionTypes.Wallet,
	}}
	s.render(w, "index.html", page)
}

type resultPage struct {
	PredictionText  string
	RiskPercent     float64
	Amount          string
	TimeStr         string
	TransactionType string
	Breakdown       []util.ScoreComponent
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newResultPage(ev evaluation) resultPage {
	if ev.Failed {
		return resultPage{
			PredictionText: ev.Result.Verdict,
			Amount:         "0",
			Breakdown:      ev.Result.Breakdown,
		}
	}
	return resultPage{
		PredictionText:  fmt.Sprintf("%s - Risk %s%%", ev.Result.Verdict, formatPercent(ev.Result.RiskPercent)),
		RiskPercent:     ev.Result.RiskPercent,
		Amount:          ev.Input.Amount.String(),
		TimeStr:         ev.Time.Raw,
		TransactionType: ev.Input.TransactionType,
		Breakdown:       ev.Result.Breakdown,
	}
}

func (s *Server) PredictHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.metrics.fail("form")
		s.render(w, "result.html", newResultPage(evaluation{Result: util.ErrorResult(err), Failed: true}))
		return
	}

	ev := s.evaluate(
		r.PostFormValue("transaction_amount"),
		r.PostFormValue("transaction_time"),
		r.PostFormValue("transaction_type"),
	)
	if !ev.Failed {
		s.record(middleware.GetReqID(r.Context()), ev)
	}

	s.render(w, "result.html", newResultPage(ev))
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type ScoreRequest struct {
	Amount any    `json:"amount"`
	Time   string `json:"time"`
	Type   string `json:"type"`
}

type ScoreResponse struct {
	util.RiskResult
	ID              *uuid.UUID `json:"id,omitempty"`
	Amount          string     `json:"amount"`
	TimeStr         string     `json:"time"`
	TransactionType string     `json:"transactionType"`
}

func amountString(v any) string {
	switch a := v.(type) {
	case nil:
		return ""
	case json.Number:
		return a.String()
	case string:
		return a
	default:
		return fmt.Sprint(a)
	}
}

func (s *Server) ScoreHandler(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	ev := s.evaluate(amountString(req.Amount), req.Time, req.Type)

	response := ScoreResponse{RiskResult: ev.Result, Amount: "0"}
	if !ev.Failed {
		id := s.record(middleware.GetReqID(r.Context()), ev)
		// Only stored assessments can be looked up again.
		if history.Enabled() {
			response.ID = &id
		}
		response.Amount = ev.Input.Amount.String()
		response.TimeStr = ev.Time.Raw
		response.TransactionType = ev.Input.TransactionType
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("encoding score response", "error", err)
	}
}
