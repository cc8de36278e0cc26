package handlers

import (
	"net/http"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"leadflow/internal/apperr"
	"leadflow/internal/authz"
	"leadflow/internal/models"
)

type fakeLeadService struct {
	leads          map[int]*models.Lead
	lastUpdate     *models.Lead
	lastAssignedTo int
	nextID         int
}

func newFakeLeadService() *fakeLeadService {
	return &fakeLeadService{leads: map[int]*models.Lead{}}
}

func (f *fakeLeadService) Create(l *models.Lead) error {
	for _, existing := range f.leads {
		if existing.Email == l.Email || existing.Phone == l.Phone {
			return apperr.Conflict("Lead with the same email or phone number already exists")
		}
	}
	f.nextID++
	l.ID = f.nextID
	l.Status = models.StatusNew
	l.IsActive = true
	f.leads[l.ID] = l
	return nil
}

func (f *fakeLeadService) GetByID(id int) (*models.Lead, error) { return f.leads[id], nil }

func (f *fakeLeadService) Update(l *models.Lead) error {
	cp := *l
	f.lastUpdate = &cp
	f.leads[l.ID] = &cp
	return nil
}

func (f *fakeLeadService) Deactivate(id int) error {
	if l, ok := f.leads[id]; ok {
		l.IsActive = false
	}
	return nil
}

func (f *fakeLeadService) List(assignedTo, limit, offset int) ([]*models.Lead, error) {
	f.lastAssignedTo = assignedTo
	var out []*models.Lead
	for _, l := range f.leads {
		if assignedTo > 0 && l.AssignedTo != assignedTo {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLeadService) Count(assignedTo int) (int, error) {
	leads, _ := f.List(assignedTo, 0, 0)
	return len(leads), nil
}

func newLeadRouter(svc *fakeLeadService, callerID int, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", callerID)
		c.Set("role", role)
	})
	h := NewLeadHandler(svc)
	r.POST("/leads", h.Create)
	r.GET("/leads", h.List)
	r.GET("/leads/:id", h.GetByID)
	r.PUT("/leads/:id", h.Update)
	r.DELETE("/leads/:id", h.Deactivate)
	return r
}

func TestCreateLead_StampsCallerOwnership(t *testing.T) {
	svc := newFakeLeadService()
	r := newLeadRouter(svc, 7, authz.RoleEmployee)

	w := doJSON(t, r, http.MethodPost, "/leads",
		`{"firstName":"Bob","email":"b@x.com","phone":"555-0101"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	created := svc.leads[1]
	require.Equal(t, 7, created.AssignedTo)
	require.Equal(t, 7, created.CreatedBy)
	require.Equal(t, models.StatusNew, created.Status)
	require.True(t, created.IsActive)

	lead := decodeBody(t, w)["lead"].(map[string]interface{})
	require.Equal(t, "NEW", lead["status"])
}

func TestCreateLead_ConflictOnDuplicate(t *testing.T) {
	svc := newFakeLeadService()
	r := newLeadRouter(svc, 7, authz.RoleEmployee)

	w := doJSON(t, r, http.MethodPost, "/leads",
		`{"firstName":"Bob","email":"b@x.com","phone":"555-0101"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// same email, different phone
	w = doJSON(t, r, http.MethodPost, "/leads",
		`{"firstName":"Rob","email":"b@x.com","phone":"555-9999"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Lead with the same email or phone number already exists", decodeBody(t, w)["message"])
	require.Equal(t, 1, len(svc.leads))
}

func TestCreateLead_AggregatesValidationMessages(t *testing.T) {
	r := newLeadRouter(newFakeLeadService(), 7, authz.RoleEmployee)

	w := doJSON(t, r, http.MethodPost, "/leads", `{"email":"nope"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	msgs := decodeBody(t, w)["message"].([]interface{})
	require.Contains(t, msgs, "First Name is required")
	require.Contains(t, msgs, "Invalid email")
	require.Contains(t, msgs, "Phone is required")
}

func TestListLeads_EmptyReturnsNotFound(t *testing.T) {
	r := newLeadRouter(newFakeLeadService(), 1, authz.RoleAdmin)

	w := doJSON(t, r, http.MethodGet, "/leads", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "No leads found.", decodeBody(t, w)["message"])
}

func TestListLeads_RoleScoping(t *testing.T) {
	svc := newFakeLeadService()
	require.NoError(t, svc.Create(&models.Lead{Email: "a@x.com", Phone: "1", AssignedTo: 1}))
	require.NoError(t, svc.Create(&models.Lead{Email: "b@x.com", Phone: "2", AssignedTo: 2}))

	// employee sees only leads assigned to them
	r := newLeadRouter(svc, 2, authz.RoleEmployee)
	w := doJSON(t, r, http.MethodGet, "/leads", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, svc.lastAssignedTo)

	body := decodeBody(t, w)
	require.Len(t, body["leads"].([]interface{}), 1)
	require.Equal(t, float64(1), body["totalLeads"])

	// admin sees everything
	r = newLeadRouter(svc, 1, authz.RoleAdmin)
	w = doJSON(t, r, http.MethodGet, "/leads", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, svc.lastAssignedTo)
	require.Len(t, decodeBody(t, w)["leads"].([]interface{}), 2)
}

func TestGetLeadByID(t *testing.T) {
	svc := newFakeLeadService()
	require.NoError(t, svc.Create(&models.Lead{Email: "b@x.com", Phone: "555-0101"}))

	r := newLeadRouter(svc, 1, authz.RoleAdmin)

	w := doJSON(t, r, http.MethodGet, "/leads/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid lead ID", decodeBody(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, "/leads/99", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Lead not found", decodeBody(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, "/leads/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	lead := decodeBody(t, w)["lead"].(map[string]interface{})
	require.Equal(t, "b@x.com", lead["email"])
}

func TestUpdateLead_OmittedFieldsPreserved(t *testing.T) {
	svc := newFakeLeadService()
	require.NoError(t, svc.Create(&models.Lead{FirstName: "Bob", Email: "b@x.com", Phone: "555-0101", AssignedTo: 2}))

	r := newLeadRouter(svc, 1, authz.RoleAdmin)
	w := doJSON(t, r, http.MethodPut, "/leads/1", `{"status":"CONTACTED"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, "CONTACTED", svc.lastUpdate.Status)
	require.Equal(t, "Bob", svc.lastUpdate.FirstName)
	require.Equal(t, "b@x.com", svc.lastUpdate.Email)
	require.Equal(t, 2, svc.lastUpdate.AssignedTo)
}

func TestUpdateLead_NotFound(t *testing.T) {
	r := newLeadRouter(newFakeLeadService(), 1, authz.RoleAdmin)

	w := doJSON(t, r, http.MethodPut, "/leads/99", `{"status":"CONTACTED"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Lead not found.", decodeBody(t, w)["message"])
}

func TestUpdateLead_RejectsUnknownStatus(t *testing.T) {
	svc := newFakeLeadService()
	require.NoError(t, svc.Create(&models.Lead{Email: "b@x.com", Phone: "555-0101"}))

	r := newLeadRouter(svc, 1, authz.RoleAdmin)
	w := doJSON(t, r, http.MethodPut, "/leads/1", `{"status":"ARCHIVED"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeactivateLead_Idempotent(t *testing.T) {
	svc := newFakeLeadService()
	require.NoError(t, svc.Create(&models.Lead{Email: "b@x.com", Phone: "555-0101"}))

	r := newLeadRouter(svc, 1, authz.RoleAdmin)

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodDelete, "/leads/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "Lead successfully deactivated", decodeBody(t, w)["message"])
		require.False(t, svc.leads[1].IsActive)
	}
}
