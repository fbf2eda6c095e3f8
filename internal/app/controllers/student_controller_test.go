package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascent/coursebuddy/internal/app/models"
)

func TestCreateStudentProfile(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/auth/register", "",
		`{"username":"jane@school.edu","password":"secret99"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(http.MethodPost, "/api/students?username=jane@school.edu", "",
		`{"firstName":"Jane","lastName":"Doe","phone":"555-0101"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var student models.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &student))
	assert.Equal(t, "Jane", student.FirstName)
	assert.NotZero(t, student.UserID)
	require.NotNil(t, student.User)
	assert.Equal(t, "jane@school.edu", student.User.Username)
}

func TestCreateStudentProfileRequiresUsername(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/students", "",
		`{"firstName":"Jane","lastName":"Doe"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateStudentProfileUnknownUser(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/students?username=nobody@school.edu", "",
		`{"firstName":"Jane","lastName":"Doe"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentRoutesRequireAdmin(t *testing.T) {
	app := newTestApp(t)
	studentToken := app.studentToken(t, "jane@school.edu")

	rec := app.do(http.MethodGet, "/api/students", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodGet, "/api/students", studentToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := app.adminToken(t)
	rec = app.do(http.MethodGet, "/api/students", adminToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminEnrollReturnsStudentWithCourses(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.adminToken(t)
	app.studentToken(t, "jane@school.edu")
	course := app.addCourse(t, "CS101")

	path := fmt.Sprintf("/api/students/1/courses/%d", course.ID)
	rec := app.do(http.MethodPost, path, adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var student models.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &student))
	require.Len(t, student.Courses, 1)
	assert.Equal(t, "CS101", student.Courses[0].CourseCode)

	// Enrolling twice changes nothing
	rec = app.do(http.MethodPost, path, adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &student))
	assert.Len(t, student.Courses, 1)
}

func TestAdminEnrollMissingStudentOrCourse(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.adminToken(t)
	app.studentToken(t, "jane@school.edu")
	course := app.addCourse(t, "CS101")

	rec := app.do(http.MethodPost, fmt.Sprintf("/api/students/999/courses/%d", course.ID), adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPost, "/api/students/1/courses/999", adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminUnenroll(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.adminToken(t)
	app.studentToken(t, "jane@school.edu")
	course := app.addCourse(t, "CS101")

	path := fmt.Sprintf("/api/students/1/courses/%d", course.ID)
	rec := app.do(http.MethodPost, path, adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodDelete, path, adminToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Removing the absent relationship still succeeds
	rec = app.do(http.MethodDelete, path, adminToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(http.MethodGet, "/api/students/1/courses", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestSelfServiceEnrollment(t *testing.T) {
	app := newTestApp(t)
	token := app.studentToken(t, "jane@school.edu")
	course := app.addCourse(t, "CS101")

	body := fmt.Sprintf(`{"courseId":%d}`, course.ID)
	rec := app.do(http.MethodPost, "/api/students/me/enroll", token, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Successfully enrolled in course")

	rec = app.do(http.MethodGet, "/api/students/me/courses", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var courses []*models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "CS101", courses[0].CourseCode)

	rec = app.do(http.MethodPost, "/api/students/me/unenroll", token, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Successfully unenrolled from course")

	rec = app.do(http.MethodGet, "/api/students/me/courses", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestSelfServiceRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/students/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodPost, "/api/students/me/enroll", "", `{"courseId":1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMyProfile(t *testing.T) {
	app := newTestApp(t)
	token := app.studentToken(t, "jane@school.edu")

	rec := app.do(http.MethodGet, "/api/students/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var student models.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &student))
	assert.Equal(t, "Jane", student.FirstName)
}

func TestDeleteStudentKeepsAccount(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.adminToken(t)
	app.studentToken(t, "jane@school.edu")

	rec := app.do(http.MethodDelete, "/api/students/1", adminToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(http.MethodGet, "/api/students/1", adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The user account survives; login still works
	rec = app.do(http.MethodPost, "/api/auth/login", "",
		`{"username":"jane@school.edu","password":"secret99"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvalidIDParameter(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.adminToken(t)

	rec := app.do(http.MethodGet, "/api/students/abc", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
