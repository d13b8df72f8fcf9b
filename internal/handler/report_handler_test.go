package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/netopsio/maintreport/internal/report"
	"github.com/netopsio/maintreport/internal/service"
)

func newTestHandler(t *testing.T) *ReportHandler {
	t.Helper()
	p := &report.Profile{
		SheetName:          "Cisco_Maintenance_Report",
		DynamicColumnOrder: []string{"host", "sr_no"},
	}
	p.ApplyDefaults()
	require.NoError(t, p.Validate())
	return NewReportHandler(service.NewReportService(p))
}

func doRender(t *testing.T, mode, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/reports/"+mode, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/reports/:mode")
	c.SetParamNames("mode")
	c.SetParamValues(mode)
	require.NoError(t, newTestHandler(t).RenderHandler(c))
	return rec
}

func TestRenderHandlerStreamsWorkbook(t *testing.T) {
	rec := doRender(t, "dynamic", `{"records":[{"host":"sw-01","sr_no":"FDO1"}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Cisco_Maintenance_Report")
	require.NoError(t, err)
	require.Greater(t, len(rows), 2)
	assert.Equal(t, []string{"host", "sr_no"}, rows[1])
}

func TestRenderHandlerUnknownMode(t *testing.T) {
	rec := doRender(t, "weekly", `{"records":[]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown report mode")
}

func TestRenderHandlerBadBody(t *testing.T) {
	rec := doRender(t, "dynamic", `{"records":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, newTestHandler(t).HealthHandler(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
