package apihandlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-tools/survey-report/pkg/reportbuilder"
	"github.com/helpdesk-tools/survey-report/pkg/reportservice"
	"github.com/helpdesk-tools/survey-report/pkg/utils"
)

const PDF_PATH = "/v1/pdf"

func (h *HttpEndpoints) AddResponsesAPI(rg *gin.RouterGroup) {
	rg.GET("/responses", h.listResponses)
	rg.GET("/pdf", h.getResponsePDF)
}

type responseRow struct {
	reportservice.ListingRow
	PDFURL string `json:"pdf_url"`
}

type surveyResponses struct {
	SurveyID string        `json:"survey_id"`
	Title    string        `json:"title"`
	Rows     []responseRow `json:"rows"`
}

func pdfURL(surveyID string, row reportservice.ListingRow) string {
	q := url.Values{}
	q.Set("survey_id", surveyID)
	q.Set("respondent_id", row.RespondentID)
	q.Set("date", row.Date)
	q.Set("status", row.Status)
	return PDF_PATH + "?" + q.Encode()
}

func (h *HttpEndpoints) listResponses(c *gin.Context) {
	numDays := h.defaultNumDays
	if v := c.Query("numdays"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad value for 'numdays'"})
			return
		}
		numDays = n
	}

	svc, ok := h.reportService(c)
	if !ok {
		return
	}

	since := time.Now().Add(-time.Duration(numDays) * 24 * time.Hour)
	listings, err := svc.ListRecent(c.Request.Context(), since)
	if err != nil {
		respondWithError(c, err)
		return
	}

	surveys := make([]surveyResponses, 0, len(listings))
	for _, l := range listings {
		s := surveyResponses{SurveyID: l.SurveyID, Title: l.Title, Rows: make([]responseRow, 0, len(l.Rows))}
		for _, row := range l.Rows {
			s.Rows = append(s.Rows, responseRow{ListingRow: row, PDFURL: pdfURL(l.SurveyID, row)})
		}
		surveys = append(surveys, s)
	}

	c.JSON(http.StatusOK, gin.H{
		"numdays": numDays,
		"surveys": surveys,
	})
}

func (h *HttpEndpoints) getResponsePDF(c *gin.Context) {
	meta := reportbuilder.Meta{
		SurveyID:     c.Query("survey_id"),
		RespondentID: c.Query("respondent_id"),
		Date:         c.Query("date"),
		Status:       c.Query("status"),
	}

	missing := []string{}
	for _, p := range []struct{ name, value string }{
		{"survey_id", meta.SurveyID},
		{"respondent_id", meta.RespondentID},
		{"date", meta.Date},
		{"status", meta.Status},
	} {
		if p.value == "" {
			missing = append(missing, p.name)
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "required parameters missing: " + strings.Join(missing, ", ")})
		return
	}
	if !utils.IsURLSafe(meta.SurveyID) || !utils.IsURLSafe(meta.RespondentID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid survey or respondent id"})
		return
	}

	svc, ok := h.reportService(c)
	if !ok {
		return
	}

	doc, fileName, err := svc.BuildReport(c.Request.Context(), meta)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := doc.WritePDF(&buf); err != nil {
		respondWithError(c, err)
		return
	}

	slog.Info("report generated", slog.String("surveyID", meta.SurveyID), slog.String("respondentID", meta.RespondentID))
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, fileName))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
