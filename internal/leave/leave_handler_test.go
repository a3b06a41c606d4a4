package leave_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/leave"
	leaveerrors "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/leave/errors"
	leavemock "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/leave/mock"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/middleware"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/rbac"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *apiMeta        `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

func newTestContext(method, target, body string, id *session.Identity) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if id != nil {
		middleware.SetIdentity(c, id)
	}
	return c, w
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavemock.NewMockService(ctrl)
		id := employeeIdentity(7, 10)

		svc.EXPECT().Submit(gomock.Any(), id, leave.SubmitLeaveRequest{
			StartDate: "2030-06-01",
			EndDate:   "2030-06-02",
			Reason:    "Repos",
		}).Return(leave.LeaveResponse{ID: 1, EmployeeID: 10, Status: leave.StatusPending, StartDate: "2030-06-01", EndDate: "2030-06-02"}, nil)

		c, w := newTestContext(http.MethodPost, "/leaves", `{"start_date":"2030-06-01","end_date":"2030-06-02","reason":"Repos"}`, id)
		leave.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("negative malformed employee id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavemock.NewMockService(ctrl)

		c, w := newTestContext(http.MethodPost, "/leaves", `{"start_date":"2030-06-01","employee_id":"abc"}`, rhIdentity())
		leave.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative forbidden maps to 403", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavemock.NewMockService(ctrl)
		svc.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Return(leave.LeaveResponse{}, leaveerrors.ErrSubmitForOtherEmployee)

		c, w := newTestContext(http.MethodPost, "/leaves", `{"start_date":"2030-06-01","end_date":"2030-06-02","reason":"Repos","employee_id":20}`, employeeIdentity(7, 10))
		leave.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})
}

func TestLeaveHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leavemock.NewMockService(ctrl)
	svc.EXPECT().List(gomock.Any(), gomock.Any()).Return([]leave.LeaveResponse{{ID: 3}, {ID: 2}, {ID: 1}}, nil)

	c, w := newTestContext(http.MethodGet, "/leaves?page=2&page_size=2", "", rhIdentity())
	leave.NewHandler(svc).List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got []leave.LeaveResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
}

func TestLeaveHandler_List_OutOfRangePaging(t *testing.T) {
	three := []leave.LeaveResponse{{ID: 3}, {ID: 2}, {ID: 1}}

	t.Run("huge page returns an empty page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavemock.NewMockService(ctrl)
		svc.EXPECT().List(gomock.Any(), gomock.Any()).Return(three, nil)

		c, w := newTestContext(http.MethodGet, "/leaves?page=9223372036854775807&page_size=10", "", rhIdentity())
		leave.NewHandler(svc).List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Empty(t, got)
		assert.Equal(t, int64(3), env.Meta.Total)
	})

	t.Run("page size is capped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavemock.NewMockService(ctrl)
		svc.EXPECT().List(gomock.Any(), gomock.Any()).Return(three, nil)

		c, w := newTestContext(http.MethodGet, "/leaves?page=2&page_size=9223372036854775807", "", rhIdentity())
		leave.NewHandler(svc).List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got []leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Empty(t, got)
		assert.Equal(t, 100, env.Meta.PageSize)
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavemock.NewMockService(ctrl)
		svc.EXPECT().Decide(gomock.Any(), gomock.Any(), int64(7), leave.DecideLeaveRequest{Action: "approve"}).
			Return(leave.LeaveResponse{ID: 7, Status: leave.StatusApproved}, nil)

		c, w := newTestContext(http.MethodPut, "/leaves/7/decision", `{"action":"approve"}`, rhIdentity())
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		leave.NewHandler(svc).Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative already decided", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavemock.NewMockService(ctrl)
		svc.EXPECT().Decide(gomock.Any(), gomock.Any(), int64(7), gomock.Any()).
			Return(leave.LeaveResponse{}, leaveerrors.ErrLeaveAlreadyDecided)

		c, w := newTestContext(http.MethodPut, "/leaves/7/decision", `{"action":"reject"}`, rhIdentity())
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		leave.NewHandler(svc).Decide(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "Cette demande a déjà été traitée", env.Error.Message)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := leavemock.NewMockService(ctrl)

		c, w := newTestContext(http.MethodPut, "/leaves/abc/decision", `{"action":"approve"}`, rhIdentity())
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		leave.NewHandler(svc).Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func sampleLeaves() []leave.LeaveResponse {
	return []leave.LeaveResponse{
		{
			ID: 2, EmployeeID: 10, StartDate: "2030-06-01", EndDate: "2030-06-03", Days: 3, Reason: "Vacances", Status: leave.StatusApproved,
			Employee: &leave.EmployeeSummary{ID: 10, Matricule: "REG-0010", Nom: "Kabila", Prenom: "Marie", Service: "Distribution"},
		},
		{ID: 1, EmployeeID: 20, StartDate: "2030-05-01", EndDate: "2030-05-01", Days: 1, Reason: "Repos", Status: leave.StatusPending},
	}
}

func TestLeaveHandler_ExportXLSX(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leavemock.NewMockService(ctrl)
	svc.EXPECT().List(gomock.Any(), gomock.Any()).Return(sampleLeaves(), nil)

	c, w := newTestContext(http.MethodGet, "/leaves/export.xlsx", "", rhIdentity())
	leave.NewHandler(svc).ExportXLSX(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	assert.NoError(t, err)
	defer f.Close()

	header, _ := f.GetCellValue("Congés", "B1")
	assert.Equal(t, "Matricule", header)
	matricule, _ := f.GetCellValue("Congés", "B2")
	assert.Equal(t, "REG-0010", matricule)
	status, _ := f.GetCellValue("Congés", "I3")
	assert.Equal(t, "En attente", status)
}

func TestLeaveHandler_CalendarICS(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := leavemock.NewMockService(ctrl)
	svc.EXPECT().List(gomock.Any(), gomock.Any()).Return(sampleLeaves(), nil)

	c, w := newTestContext(http.MethodGet, "/leaves/calendar.ics", "", employeeIdentity(7, 10))
	leave.NewHandler(svc).CalendarICS(c)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "20300601")
	assert.Contains(t, body, "20300604")
	assert.Contains(t, body, "leave-2@grh.regideso")
}

func TestRegisterRoutes_RoleGuards(t *testing.T) {
	gin.SetMode(gin.TestMode)
	enforcer, err := rbac.NewEnforcer()
	assert.NoError(t, err)
	rbacService := rbac.NewService(enforcer)

	ctrl := gomock.NewController(t)
	svc := leavemock.NewMockService(ctrl)

	newRouter := func(id *session.Identity) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if id != nil {
				middleware.SetIdentity(c, id)
			}
			c.Next()
		})
		leave.RegisterRoutes(r.Group("/api/v1"), leave.NewHandler(svc), rbacService, nil)
		return r
	}

	t.Run("employee cannot decide", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/leaves/7/decision", strings.NewReader(`{"action":"approve"}`))
		newRouter(employeeIdentity(7, 10)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("employee cannot export", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(employeeIdentity(7, 10)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leaves/export.xlsx", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leaves", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unlisted role gets employee permissions", func(t *testing.T) {
		svc.EXPECT().List(gomock.Any(), gomock.Any()).Return([]leave.LeaveResponse{}, nil)
		employe := &session.Identity{UserID: 8, Login: "agent", Role: "Employe", EmployeeID: int64Ptr(10)}

		w := httptest.NewRecorder()
		newRouter(employe).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leaves", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		newRouter(employe).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leaves/export.xlsx", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("employee lists own leaves", func(t *testing.T) {
		svc.EXPECT().List(gomock.Any(), gomock.Any()).Return([]leave.LeaveResponse{}, nil)

		w := httptest.NewRecorder()
		newRouter(employeeIdentity(7, 10)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leaves", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
