package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-api/internal/model"
	"membership-api/pkg/apierror"
)

type fakeMemberService struct {
	members  map[string]model.Member
	lastName string
	lastLast string
	patch    model.UpdateMemberRequest
}

func (f *fakeMemberService) List(context.Context) ([]model.Member, error) {
	out := make([]model.Member, 0, len(f.members))
	for _, m := range f.members {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMemberService) Get(_ context.Context, id string) (model.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return model.Member{}, apierror.New(apierror.KindNotFound, "member not found", id)
	}
	return m, nil
}

func (f *fakeMemberService) Create(_ context.Context, req model.CreateMemberRequest) (model.Member, error) {
	return model.Member{ID: "new", Name: req.Name, Lastname: req.Lastname, BirthDate: req.BirthDate}, nil
}

func (f *fakeMemberService) Update(ctx context.Context, id string, patch model.UpdateMemberRequest) (model.Member, error) {
	f.patch = patch
	m, err := f.Get(ctx, id)
	if err != nil {
		return model.Member{}, err
	}
	m.Apply(patch)
	return m, nil
}

func (f *fakeMemberService) Delete(_ context.Context, id string) error {
	if _, ok := f.members[id]; !ok {
		return model.ErrMemberNotFound
	}
	delete(f.members, id)
	return nil
}

func (f *fakeMemberService) Search(_ context.Context, name string, lastname string) ([]model.MemberSummary, error) {
	f.lastName, f.lastLast = name, lastname
	return []model.MemberSummary{{ID: "m1", Name: "Ana", Lastname: "Pérez"}}, nil
}

func memberRouter(svc *fakeMemberService) http.Handler {
	h := NewMemberHandler(svc)
	r := chi.NewRouter()
	r.Get("/members", h.List)
	r.Get("/members/find", h.Search)
	r.Post("/members/create", h.Create)
	r.Get("/members/{id}", h.Get)
	r.Patch("/members/{id}", h.Update)
	r.Delete("/members/{id}", h.Delete)
	return r
}

func TestMemberHandler_GetAndNotFound(t *testing.T) {
	svc := &fakeMemberService{members: map[string]model.Member{"m1": {ID: "m1", Name: "Ana"}}}
	router := memberRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members/m1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string       `json:"status"`
		Data   model.Member `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "Ana", body.Data.Name)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}

func TestMemberHandler_SearchReadsQuery(t *testing.T) {
	svc := &fakeMemberService{}
	router := memberRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members/find?name=an&lastname=p%C3%A9", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "an", svc.lastName)
	assert.Equal(t, "pé", svc.lastLast)
}

func TestMemberHandler_CreateParsesDate(t *testing.T) {
	router := memberRouter(&fakeMemberService{})

	payload := `{"name":"Ana","lastname":"Pérez","birth_date":"1990-05-17"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/members/create", strings.NewReader(payload)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"birth_date":"1990-05-17"`)
}

func TestMemberHandler_PatchOnlyPresentFields(t *testing.T) {
	svc := &fakeMemberService{members: map[string]model.Member{"m1": {ID: "m1", Name: "Ana", Phone: "111"}}}
	router := memberRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/members/m1", strings.NewReader(`{"phone":"222"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.patch.Name)
	require.NotNil(t, svc.patch.Phone)
	assert.Contains(t, rec.Body.String(), `"phone":"222"`)
	assert.Contains(t, rec.Body.String(), `"name":"Ana"`)
}

func TestMemberHandler_DeleteMapsSentinel(t *testing.T) {
	svc := &fakeMemberService{members: map[string]model.Member{"m1": {ID: "m1"}}}
	router := memberRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/members/m1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/members/m1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeSpaceService struct {
	spaces map[string]model.Space
}

func (f *fakeSpaceService) Create(_ context.Context, name string) (model.Space, error) {
	if _, ok := f.spaces[name]; ok {
		return model.Space{}, apierror.New(apierror.KindAlreadyExists, `Space "`+name+`" already exists`, "")
	}
	s := model.Space{ID: "s-" + name, Name: name}
	f.spaces[name] = s
	return s, nil
}

func (f *fakeSpaceService) FindByName(_ context.Context, name string) (model.Space, error) {
	s, ok := f.spaces[name]
	if !ok {
		return model.Space{}, apierror.New(apierror.KindNotFound, "space not found", name)
	}
	return s, nil
}

func TestSpaceHandler_CreateAndFind(t *testing.T) {
	h := NewSpaceHandler(&fakeSpaceService{spaces: map[string]model.Space{}})

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/space/create", strings.NewReader(`{"name":"Gym"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/space/create", strings.NewReader(`{"name":"Gym"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `Space \"Gym\" already exists`)

	rec = httptest.NewRecorder()
	h.FindByName(rec, httptest.NewRequest(http.MethodGet, "/space/find?name=Gym", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Gym"`)

	rec = httptest.NewRecorder()
	h.FindByName(rec, httptest.NewRequest(http.MethodGet, "/space/find?name=Pool", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeSocietyService struct {
	err error
}

func (f fakeSocietyService) List(context.Context) ([]model.MedicalSociety, error) {
	return []model.MedicalSociety{{ID: "ms1", Name: "SMU", EmergencyPhone: "105"}}, f.err
}

func (f fakeSocietyService) Create(_ context.Context, name string, phone string) (model.MedicalSociety, error) {
	return model.MedicalSociety{ID: "ms2", Name: name, EmergencyPhone: phone}, f.err
}

func TestMedicalSocietyHandler(t *testing.T) {
	h := NewMedicalSocietyHandler(fakeSocietyService{})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/medical_societies", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"emergency_phone":"105"`)

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/medical_societies", strings.NewReader(`{"name":"CASMU","emergency_phone":"911"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWriteError_UnclassifiedIsInternal(t *testing.T) {
	h := NewMedicalSocietyHandler(fakeSocietyService{err: errors.New("pool closed")})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/medical_societies", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","error":"unexpected server error","code":"INTERNAL_ERROR"}`, rec.Body.String())
}
