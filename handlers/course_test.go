package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ไล่ตาม flow จริง: สร้างคอร์ส -> เพิ่มบทเรียน -> ลงเรียน -> ออกใบรับรอง -> ค้นด้วยเลขใบ
func TestCatalogEnrollCertificateFlow(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "somchai", false)
	token := obtainToken(t, e, "somchai")

	// สร้างคอร์ส
	rec := doReq(t, e, http.MethodPost, "/api/courses", map[string]any{
		"title": "Intro", "slug": "intro", "level": "BEG", "price": 0,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var course map[string]any
	decodeBody(t, rec, &course)
	courseID := uint(course["id"].(float64))

	// detail ต้องมี lessons ว่าง
	rec = doReq(t, e, http.MethodGet, "/api/courses/intro", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail map[string]any
	decodeBody(t, rec, &detail)
	assert.Equal(t, "Intro", detail["title"])
	lessons, ok := detail["lessons"].([]any)
	require.True(t, ok, "detail must carry lessons array")
	assert.Len(t, lessons, 0)

	// เพิ่มบทเรียน
	rec = doReq(t, e, http.MethodPost, "/api/lessons", map[string]any{
		"course_id": courseID, "title": "L1", "order": 1,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doReq(t, e, http.MethodGet, "/api/courses/intro", nil, "")
	decodeBody(t, rec, &detail)
	lessons = detail["lessons"].([]any)
	require.Len(t, lessons, 1)
	assert.Equal(t, "L1", lessons[0].(map[string]any)["title"])

	// list แสดงจำนวนบทเรียน ไม่แสดงเนื้อหา
	rec = doReq(t, e, http.MethodGet, "/api/courses", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list map[string]any
	decodeBody(t, rec, &list)
	items := list["data"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, float64(1), first["lessons_count"])
	_, hasLessons := first["lessons"]
	assert.False(t, hasLessons)

	// ลงเรียน
	rec = doReq(t, e, http.MethodPost, "/api/enrollments", map[string]any{"course_id": courseID}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var enr map[string]any
	decodeBody(t, rec, &enr)
	enrID := uint(enr["id"].(float64))
	assert.Equal(t, true, enr["active"])

	rec = doReq(t, e, http.MethodGet, "/api/enrollments", nil, token)
	decodeBody(t, rec, &list)
	require.Len(t, list["data"].([]any), 1)

	// ออกใบรับรองแล้วค้นกลับด้วยเลข
	rec = doReq(t, e, http.MethodPost, "/api/certificates", map[string]any{"enrollment_id": enrID}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var cert map[string]any
	decodeBody(t, rec, &cert)
	code := cert["cert_number"].(string)

	rec = doReq(t, e, http.MethodGet, "/api/certificates/by-number?q="+code, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &cert)
	nested := cert["enrollment"].(map[string]any)
	assert.Equal(t, float64(enrID), nested["id"])
	assert.Equal(t, "intro", nested["course"].(map[string]any)["slug"])

	// ลงเรียนซ้ำต้องได้ record เดิม ไม่ใช่แถวใหม่
	rec = doReq(t, e, http.MethodPost, "/api/enrollments", map[string]any{"course_id": courseID}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &enr)
	assert.Equal(t, float64(enrID), enr["id"])
}

func TestCourseWritesRequireAuth(t *testing.T) {
	e, _ := setup(t)

	rec := doReq(t, e, http.MethodPost, "/api/courses", map[string]any{
		"title": "Go", "slug": "go", "level": "BEG",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCourseValidationAndNotFound(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "somchai", false)
	token := obtainToken(t, e, "somchai")

	rec := doReq(t, e, http.MethodPost, "/api/courses", map[string]any{
		"title": "Bad", "slug": "Bad Slug!", "level": "XXX",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doReq(t, e, http.MethodGet, "/api/courses/no-such-course", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doReq(t, e, http.MethodDelete, "/api/courses/no-such-course", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCourseDuplicateSlug(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "somchai", false)
	token := obtainToken(t, e, "somchai")

	payload := map[string]any{"title": "Go", "slug": "go", "level": "MID", "price": 100}
	rec := doReq(t, e, http.MethodPost, "/api/courses", payload, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doReq(t, e, http.MethodPost, "/api/courses", payload, token)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

// PATCH ที่ไม่ส่งฟิลด์มา ต้องไม่ทับค่าเดิม (โดยเฉพาะ price ที่เป็นตัวเลข)
func TestCoursePatchKeepsOmittedFields(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "somchai", false)
	token := obtainToken(t, e, "somchai")

	rec := doReq(t, e, http.MethodPost, "/api/courses", map[string]any{
		"title": "Go", "slug": "go", "level": "MID", "price": 199.5,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doReq(t, e, http.MethodPatch, "/api/courses/go", map[string]any{
		"title": "Go Advanced",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var crs map[string]any
	decodeBody(t, rec, &crs)
	assert.Equal(t, "Go Advanced", crs["title"])
	assert.Equal(t, 199.5, crs["price"])
	assert.Equal(t, "MID", crs["level"])

	// ตั้งราคาเป็นศูนย์ตรง ๆ ยังทำได้
	rec = doReq(t, e, http.MethodPatch, "/api/courses/go", map[string]any{"price": 0}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &crs)
	assert.Equal(t, float64(0), crs["price"])
}

// lessons_count ต้องตรงรายคอร์ส รวมคอร์สที่ยังไม่มีบทเรียน
func TestCourseListLessonCounts(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "somchai", false)
	token := obtainToken(t, e, "somchai")

	for slug, n := range map[string]int{"go": 2, "sql": 0, "js": 1} {
		rec := doReq(t, e, http.MethodPost, "/api/courses", map[string]any{
			"title": slug, "slug": slug,
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code)
		var crs map[string]any
		decodeBody(t, rec, &crs)
		for i := 0; i < n; i++ {
			rec = doReq(t, e, http.MethodPost, "/api/lessons", map[string]any{
				"course_id": crs["id"], "title": fmt.Sprintf("L%d", i+1), "order": i + 1,
			}, token)
			require.Equal(t, http.StatusCreated, rec.Code)
		}
	}

	rec := doReq(t, e, http.MethodGet, "/api/courses", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list map[string]any
	decodeBody(t, rec, &list)
	got := map[string]float64{}
	for _, it := range list["data"].([]any) {
		row := it.(map[string]any)
		got[row["slug"].(string)] = row["lessons_count"].(float64)
	}
	assert.Equal(t, map[string]float64{"go": 2, "sql": 0, "js": 1}, got)
}

func TestLessonOrdering(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "somchai", false)
	token := obtainToken(t, e, "somchai")

	rec := doReq(t, e, http.MethodPost, "/api/courses", map[string]any{
		"title": "Go", "slug": "go",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var course map[string]any
	decodeBody(t, rec, &course)
	courseID := uint(course["id"].(float64))

	for _, l := range []struct {
		title string
		order int
	}{{"C", 3}, {"A", 1}, {"B", 2}} {
		rec = doReq(t, e, http.MethodPost, "/api/lessons", map[string]any{
			"course_id": courseID, "title": l.title, "order": l.order,
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = doReq(t, e, http.MethodGet, "/api/courses/go", nil, "")
	var detail map[string]any
	decodeBody(t, rec, &detail)
	lessons := detail["lessons"].([]any)
	require.Len(t, lessons, 3)
	var titles []string
	for _, l := range lessons {
		titles = append(titles, l.(map[string]any)["title"].(string))
	}
	assert.Equal(t, []string{"A", "B", "C"}, titles)
}
