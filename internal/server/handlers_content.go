package server

import (
	"net/http"
	"time"

	"github.com/asadnaved9/safebrowse/internal/notify"
	"github.com/asadnaved9/safebrowse/internal/utils"
	"github.com/asadnaved9/safebrowse/pkg/risk"
	"github.com/asadnaved9/safebrowse/pkg/sites"
	"github.com/asadnaved9/safebrowse/pkg/storage"
)

const snippetLimit = 200

type analyzeRequest struct {
	ProfileID   string `json:"profile_id"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
	Context     string `json:"context,omitempty"`
}

type analyzeResponse struct {
	IsSafe     bool     `json:"is_safe"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
	Blocked    bool     `json:"blocked"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request, user storage.User) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.DB.GetProfile(r.Context(), req.ProfileID, user.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	var verdict risk.Verdict
	switch req.ContentType {
	case "text":
		verdict = s.Eval.ScoreText(req.Content, profile.Age)
	case "url":
		verdict = s.scoreURL(profile, req.Content)
	case "image":
		// Image analysis is a documented stub; the evaluator is never
		// invoked for image content.
		verdict = risk.ImageStub()
	default:
		writeError(w, http.StatusBadRequest, "unsupported content type: "+req.ContentType)
		return
	}

	if !verdict.Safe {
		snippet := "[Content blocked]"
		if req.ContentType == "text" {
			snippet = utils.Truncate(req.Content, snippetLimit)
		}
		logEntry, err := s.DB.AppendLog(r.Context(), storage.ContentLog{
			ProfileID:      profile.ID,
			ContentType:    req.ContentType,
			DetectedAt:     time.Now().UTC(),
			IsSafe:         verdict.Safe,
			Confidence:     verdict.Confidence,
			Reasons:        verdict.Reasons,
			ContentSnippet: snippet,
			URL:            req.Context,
		})
		if err != nil {
			writeStoreError(w, err)
			return
		}

		s.Webhook.Dispatch(notify.Alert{
			ProfileID:   profile.ID,
			ProfileName: profile.Name,
			ContentType: req.ContentType,
			Confidence:  verdict.Confidence,
			Reasons:     verdict.Reasons,
			Snippet:     snippet,
			DetectedAt:  logEntry.DetectedAt,
		})
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		IsSafe:     verdict.Safe,
		Confidence: verdict.Confidence,
		Reasons:    verdict.Reasons,
		Blocked:    !verdict.Safe,
	})
}

// scoreURL applies the profile's site lists before rule scoring. The
// whitelist short-circuits to safe, the blocklist to unsafe; the pure
// evaluator itself never sees either list.
func (s *Server) scoreURL(profile storage.Profile, rawURL string) risk.Verdict {
	if _, ok := sites.Matches(profile.WhitelistedSites, rawURL); ok {
		return risk.Verdict{Safe: true, Confidence: 0.0, Reasons: []string{}}
	}
	if domain, ok := sites.Matches(profile.BlockedSites, rawURL); ok {
		return risk.Verdict{
			Safe:       false,
			Confidence: 1.0,
			Reasons:    []string{"Site blocked by parent: " + domain},
		}
	}
	return s.Eval.ScoreURL(rawURL)
}
