package http

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/data/aggregates"
	"github.com/yungbote/coursehub-backend/internal/data/repos"
	repotest "github.com/yungbote/coursehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	httpH "github.com/yungbote/coursehub-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursehub-backend/internal/http/middleware"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/realtime/bus"
	"github.com/yungbote/coursehub-backend/internal/services"
)

const testSecret = "router-test-secret"

type routerFixture struct {
	t      *testing.T
	engine *gin.Engine
	repos  repos.Set
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := repotest.DB(t)
	log := repotest.Logger(t)
	set := repos.NewSet(db, log)

	agg := aggregates.NewEnrollmentAggregate(aggregates.EnrollmentAggregateDeps{
		Base:        aggregates.BaseDeps{DB: db, Log: log},
		Users:       set.Users,
		Courses:     set.Courses,
		Enrollments: set.Enrollments,
	})
	verifier, err := services.NewHMACTokenVerifier(testSecret, "")
	if err != nil {
		t.Fatalf("NewHMACTokenVerifier: %v", err)
	}
	userSvc := services.NewUserService(log, set.Users)
	enrollSvc, err := services.NewEnrollmentService(log, set.Enrollments, agg, bus.NewMemoryBus())
	if err != nil {
		t.Fatalf("NewEnrollmentService: %v", err)
	}
	engine := NewRouter(RouterConfig{
		Log:                log,
		AuthMiddleware:     httpMW.NewAuthMiddleware(log, verifier, userSvc),
		HealthHandler:      httpH.NewHealthHandler(nil),
		UserHandler:        httpH.NewUserHandler(userSvc),
		CourseHandler:      httpH.NewCourseHandler(log, services.NewCourseService(log, set.Courses)),
		EnrollmentHandler:  httpH.NewEnrollmentHandler(log, enrollSvc),
		TestimonialHandler: httpH.NewTestimonialHandler(log, services.NewTestimonialService(log, set.Testimonials)),
		AdminHandler:       httpH.NewAdminHandler(log, services.NewStatsService(log, set.Users, set.Courses, set.Enrollments)),
	})
	return &routerFixture{t: t, engine: engine, repos: set}
}

func (f *routerFixture) token(sub string, admin bool) string {
	f.t.Helper()
	raw, err := services.SignIdentityToken(testSecret, services.Identity{Subject: sub, IsAdmin: &admin}, time.Minute)
	if err != nil {
		f.t.Fatalf("SignIdentityToken: %v", err)
	}
	return raw
}

func (f *routerFixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	f.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			f.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: want=%d got=%d body=%s", want, rec.Code, rec.Body.String())
	}
}

type enrollmentBody struct {
	Enrollment *types.Enrollment `json:"enrollment"`
}

type courseBody struct {
	Course *types.Course `json:"course"`
}

func (f *routerFixture) createCourse(adminToken, title string) *types.Course {
	f.t.Helper()
	rec := f.do(nethttp.MethodPost, "/api/admin/courses", adminToken, types.CourseInput{
		Title:       title,
		Description: "learn " + title,
		Category:    "engineering",
		Thumbnail:   "https://cdn.example.com/x.png",
		Price:       10,
	})
	expectStatus(f.t, rec, nethttp.StatusCreated)
	return decode[courseBody](f.t, rec).Course
}

func TestHealthcheck(t *testing.T) {
	f := newRouterFixture(t)
	expectStatus(t, f.do(nethttp.MethodGet, "/healthcheck", "", nil), nethttp.StatusOK)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newRouterFixture(t)
	expectStatus(t, f.do(nethttp.MethodGet, "/api/enrollments", "", nil), nethttp.StatusUnauthorized)
	expectStatus(t, f.do(nethttp.MethodGet, "/api/enrollments", "garbage", nil), nethttp.StatusUnauthorized)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(nethttp.MethodGet, "/api/admin/stats", f.token("student", false), nil)
	expectStatus(t, rec, nethttp.StatusForbidden)
}

func TestEnrollmentLifecycleOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	admin := f.token("admin", true)
	student := f.token("student", false)
	course := f.createCourse(admin, "Go")

	rec := f.do(nethttp.MethodGet, "/api/courses/"+course.ID.String()+"/enrollment", student, nil)
	expectStatus(t, rec, nethttp.StatusOK)
	if decode[enrollmentBody](t, rec).Enrollment != nil {
		t.Fatalf("expected no enrollment yet")
	}

	rec = f.do(nethttp.MethodPost, "/api/courses/"+course.ID.String()+"/enroll", student, nil)
	expectStatus(t, rec, nethttp.StatusCreated)
	enrolled := decode[enrollmentBody](t, rec).Enrollment
	if enrolled.Progress != 0 || enrolled.CompletedAt != nil {
		t.Fatalf("new enrollment: got=%+v", enrolled)
	}

	rec = f.do(nethttp.MethodPost, "/api/courses/"+course.ID.String()+"/enroll", student, nil)
	expectStatus(t, rec, nethttp.StatusOK)
	if again := decode[enrollmentBody](t, rec).Enrollment; again.ID != enrolled.ID {
		t.Fatalf("repeat enroll returned a different row")
	}

	rec = f.do(nethttp.MethodGet, "/api/courses/"+course.ID.String(), "", nil)
	expectStatus(t, rec, nethttp.StatusOK)
	if got := decode[courseBody](t, rec).Course.EnrolledCount; got != 1 {
		t.Fatalf("enrolled_count: want=1 got=%d", got)
	}

	progressPath := "/api/enrollments/" + enrolled.ID.String() + "/progress"
	expectStatus(t, f.do(nethttp.MethodPatch, progressPath, student, gin.H{"progress": 150}), nethttp.StatusBadRequest)
	expectStatus(t, f.do(nethttp.MethodPatch, progressPath, student, gin.H{}), nethttp.StatusBadRequest)
	expectStatus(t, f.do(nethttp.MethodPatch, progressPath, f.token("other", false), gin.H{"progress": 50}), nethttp.StatusForbidden)

	rec = f.do(nethttp.MethodPatch, progressPath, student, gin.H{"progress": 100})
	expectStatus(t, rec, nethttp.StatusOK)
	done := decode[enrollmentBody](t, rec).Enrollment
	if done.CompletedAt == nil {
		t.Fatalf("expected completed_at after reaching 100")
	}

	rec = f.do(nethttp.MethodPatch, progressPath, student, gin.H{"progress": 60})
	expectStatus(t, rec, nethttp.StatusOK)
	reopened := decode[enrollmentBody](t, rec).Enrollment
	if reopened.CompletedAt == nil || !reopened.CompletedAt.Equal(*done.CompletedAt) {
		t.Fatalf("completed_at must be kept: before=%v after=%v", done.CompletedAt, reopened.CompletedAt)
	}

	rec = f.do(nethttp.MethodGet, "/api/enrollments", student, nil)
	expectStatus(t, rec, nethttp.StatusOK)
	list := decode[struct {
		Enrollments []types.EnrollmentWithCourse `json:"enrollments"`
	}](t, rec).Enrollments
	if len(list) != 1 || list[0].Course.ID != course.ID || list[0].Progress != 60 {
		t.Fatalf("enrollments listing: got=%+v", list)
	}

	expectStatus(t, f.do(nethttp.MethodPatch, "/api/enrollments/"+course.ID.String()+"/progress", student, gin.H{"progress": 10}), nethttp.StatusNotFound)
}

func TestEnrollMissingCourseIsNotFound(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(nethttp.MethodPost, "/api/courses/00000000-0000-0000-0000-000000000001/enroll", f.token("student", false), nil)
	expectStatus(t, rec, nethttp.StatusNotFound)
	expectStatus(t, f.do(nethttp.MethodPost, "/api/courses/not-a-uuid/enroll", f.token("student", false), nil), nethttp.StatusBadRequest)
}

func TestDeleteCourseRemovesEnrollments(t *testing.T) {
	f := newRouterFixture(t)
	admin := f.token("admin", true)
	student := f.token("student", false)
	course := f.createCourse(admin, "Rust")
	expectStatus(t, f.do(nethttp.MethodPost, "/api/courses/"+course.ID.String()+"/enroll", student, nil), nethttp.StatusCreated)

	expectStatus(t, f.do(nethttp.MethodDelete, "/api/admin/courses/"+course.ID.String(), admin, nil), nethttp.StatusNoContent)
	expectStatus(t, f.do(nethttp.MethodGet, "/api/courses/"+course.ID.String(), "", nil), nethttp.StatusNotFound)

	rows, err := f.repos.Enrollments.ListWithCourseByUser(dbctx.Context{Ctx: t.Context()}, "student")
	if err != nil {
		t.Fatalf("ListWithCourseByUser: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("enrollments after course delete: want=0 got=%d", len(rows))
	}
}

func TestAdminCourseUpdateAndStats(t *testing.T) {
	f := newRouterFixture(t)
	admin := f.token("admin", true)
	course := f.createCourse(admin, "SQL")

	rec := f.do(nethttp.MethodPatch, "/api/admin/courses/"+course.ID.String(), admin, gin.H{"title": "Advanced SQL", "enrolled_count": 999})
	expectStatus(t, rec, nethttp.StatusOK)
	updated := decode[courseBody](t, rec).Course
	if updated.Title != "Advanced SQL" || updated.EnrolledCount != 0 {
		t.Fatalf("patched course: got=%+v", updated)
	}
	expectStatus(t, f.do(nethttp.MethodPatch, "/api/admin/courses/"+course.ID.String(), admin, gin.H{"discount": 300}), nethttp.StatusBadRequest)

	student := f.token("student", false)
	expectStatus(t, f.do(nethttp.MethodPost, "/api/courses/"+course.ID.String()+"/enroll", student, nil), nethttp.StatusCreated)

	rec = f.do(nethttp.MethodGet, "/api/admin/stats", admin, nil)
	expectStatus(t, rec, nethttp.StatusOK)
	stats := decode[struct {
		Stats services.Stats `json:"stats"`
	}](t, rec).Stats
	if stats.TotalCourses != 1 || stats.TotalEnrollments != 1 || stats.TotalStudents != 2 {
		t.Fatalf("stats: got=%+v", stats)
	}
}

func TestTestimonialModerationOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	admin := f.token("admin", true)

	rec := f.do(nethttp.MethodPost, "/api/testimonials", "", types.TestimonialInput{Name: "Ann", Role: "Student", Content: "Great", Rating: 5})
	expectStatus(t, rec, nethttp.StatusCreated)
	created := decode[struct {
		Testimonial types.Testimonial `json:"testimonial"`
	}](t, rec).Testimonial
	if created.IsApproved {
		t.Fatalf("new testimonial must be unapproved")
	}

	type listBody struct {
		Testimonials []types.Testimonial `json:"testimonials"`
	}
	if got := decode[listBody](t, f.do(nethttp.MethodGet, "/api/testimonials", "", nil)).Testimonials; len(got) != 0 {
		t.Fatalf("public list before approval: want=0 got=%d", len(got))
	}
	if got := decode[listBody](t, f.do(nethttp.MethodGet, "/api/admin/testimonials", admin, nil)).Testimonials; len(got) != 1 {
		t.Fatalf("admin list: want=1 got=%d", len(got))
	}

	expectStatus(t, f.do(nethttp.MethodPatch, "/api/admin/testimonials/"+created.ID.String()+"/approval", admin, gin.H{"approved": true}), nethttp.StatusOK)
	if got := decode[listBody](t, f.do(nethttp.MethodGet, "/api/testimonials", "", nil)).Testimonials; len(got) != 1 {
		t.Fatalf("public list after approval: want=1 got=%d", len(got))
	}
}

func TestGetMeReturnsUpsertedUser(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(nethttp.MethodGet, "/api/auth/user", f.token("student", false), nil)
	expectStatus(t, rec, nethttp.StatusOK)
	me := decode[struct {
		User types.User `json:"user"`
	}](t, rec).User
	if me.ID != "student" || me.IsAdmin {
		t.Fatalf("me: got=%+v", me)
	}
}
