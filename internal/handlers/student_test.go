package handlers

import (
	"net/http"
	"testing"

	"github.com/dmelo/academia-app/internal/models"
)

func TestEnrollEndpoint(t *testing.T) {
	conn := setupTestDB(t)
	h := NewStudentHandler(conn)
	plan := seedPlan(t, conn, "Mensal", 100, 30)

	rec := postJSON(t, h.students, "/students", map[string]string{
		"name":          "Maria Silva",
		"whatsapp":      "11999990000",
		"planId":        plan.ID,
		"paymentMethod": "PIX",
		"paymentDate":   "2024-02-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("enroll status = %d, body %s", rec.Code, rec.Body.String())
	}
	var student models.Student
	decodeBody(t, rec, &student)
	if student.Status != models.StatusActive {
		t.Fatalf("status = %q, want Active", student.Status)
	}
	if student.NextDueDate.String() != "2024-03-02" {
		t.Fatalf("nextDueDate = %s, want 2024-03-02", student.NextDueDate)
	}

	var entries int64
	conn.Model(&models.Transaction{}).Where("student_id = ?", student.ID).Count(&entries)
	if entries != 1 {
		t.Fatalf("enrollment revenue entries = %d, want 1", entries)
	}
}

func TestEnrollValidation(t *testing.T) {
	conn := setupTestDB(t)
	h := NewStudentHandler(conn)

	rec := postJSON(t, h.students, "/students", map[string]string{
		"name":          "",
		"whatsapp":      "not-a-phone",
		"planId":        "",
		"paymentMethod": "Cheque",
		"paymentDate":   "01/02/2024",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, rec, &body)
	for _, field := range []string{"name", "whatsapp", "planId", "paymentMethod", "paymentDate"} {
		if body.Details[field] == "" {
			t.Errorf("missing violation for %s", field)
		}
	}
}

func TestEnrollUnknownPlanEndpoint(t *testing.T) {
	conn := setupTestDB(t)
	h := NewStudentHandler(conn)

	rec := postJSON(t, h.students, "/students", map[string]string{
		"name":          "Maria",
		"whatsapp":      "11999990000",
		"planId":        "does-not-exist",
		"paymentMethod": "PIX",
		"paymentDate":   "2024-02-01",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_plan" {
		t.Fatalf("error = %q", code)
	}
}

func TestStudentListFilters(t *testing.T) {
	conn := setupTestDB(t)
	h := NewStudentHandler(conn)
	plan := seedPlan(t, conn, "Mensal", 100, 30)
	for _, s := range []models.Student{
		{Name: "Ana", Whatsapp: "1", PlanID: plan.ID, Status: models.StatusActive},
		{Name: "Bruno", Whatsapp: "2", PlanID: plan.ID, Status: models.StatusInactive},
		{Name: "Carla Antunes", Whatsapp: "3", PlanID: plan.ID, Status: models.StatusActive},
	} {
		st := s
		if err := conn.Create(&st).Error; err != nil {
			t.Fatalf("seed student: %v", err)
		}
	}

	rec := getJSON(t, h.students, "/students?status=Active")
	var students []models.Student
	decodeBody(t, rec, &students)
	if len(students) != 2 {
		t.Fatalf("active students = %d, want 2", len(students))
	}

	rec = getJSON(t, h.students, "/students?q=An")
	decodeBody(t, rec, &students)
	if len(students) != 2 {
		t.Fatalf("search matches = %d, want 2 (Ana, Carla Antunes)", len(students))
	}

	rec = getJSON(t, h.students, "/students?status=Inactive&q=Bru")
	decodeBody(t, rec, &students)
	if len(students) != 1 || students[0].Name != "Bruno" {
		t.Fatalf("combined filter = %+v", students)
	}
}

func TestStudentUpdateProfileOnly(t *testing.T) {
	conn := setupTestDB(t)
	h := NewStudentHandler(conn)
	plan := seedPlan(t, conn, "Mensal", 100, 30)
	student := models.Student{Name: "Ana", Whatsapp: "1", PlanID: plan.ID, Status: models.StatusActive}
	if err := conn.Create(&student).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := postJSON(t, h.update, "/students/update", map[string]string{
		"id": student.ID, "name": "Ana Paula", "whatsapp": "11988887777", "trainingTime": "Manhã",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got models.Student
	if err := conn.First(&got, "id = ?", student.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "Ana Paula" || got.Whatsapp != "11988887777" || got.TrainingTime != "Manhã" {
		t.Fatalf("profile not updated: %+v", got)
	}
	if got.Status != models.StatusActive || got.PlanID != plan.ID {
		t.Fatalf("update touched status or plan: %+v", got)
	}
}

func TestStudentStatusToggle(t *testing.T) {
	conn := setupTestDB(t)
	h := NewStudentHandler(conn)
	plan := seedPlan(t, conn, "Mensal", 100, 30)
	student := models.Student{Name: "Ana", Whatsapp: "1", PlanID: plan.ID, Status: models.StatusActive}
	if err := conn.Create(&student).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := postJSON(t, h.status, "/students/status", map[string]string{"id": student.ID, "status": "Inactive"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status update = %d, body %s", rec.Code, rec.Body.String())
	}
	var got models.Student
	decodeBody(t, rec, &got)
	if got.Status != models.StatusInactive {
		t.Fatalf("status = %q, want Inactive", got.Status)
	}

	// same value again is fine
	rec = postJSON(t, h.status, "/students/status", map[string]string{"id": student.ID, "status": "Inactive"})
	if rec.Code != http.StatusOK {
		t.Fatalf("idempotent status update = %d", rec.Code)
	}

	rec = postJSON(t, h.status, "/students/status", map[string]string{"id": student.ID, "status": "Paused"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad status value accepted: %d", rec.Code)
	}
}

func TestRenewEndpoint(t *testing.T) {
	conn := setupTestDB(t)
	h := NewStudentHandler(conn)
	plan := seedPlan(t, conn, "Mensal", 100, 30)
	student := models.Student{Name: "Ana", Whatsapp: "1", PlanID: plan.ID, Status: models.StatusInactive}
	if err := conn.Create(&student).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := postJSON(t, h.renew, "/students/renew", map[string]string{
		"id": student.ID, "paymentDate": "2024-02-10", "paymentMethod": "PIX", "competenceDate": "2024-02-01",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("renew status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result struct {
		NextDueDate string  `json:"nextDueDate"`
		PlanName    string  `json:"planName"`
		PlanValue   float64 `json:"planValue"`
	}
	decodeBody(t, rec, &result)
	if result.NextDueDate != "2024-03-02" {
		t.Fatalf("nextDueDate = %s, want 2024-03-02", result.NextDueDate)
	}
	if result.PlanName != "Mensal" || result.PlanValue != 100 {
		t.Fatalf("plan summary = %+v", result)
	}

	var got models.Student
	conn.First(&got, "id = ?", student.ID)
	if got.Status != models.StatusActive {
		t.Fatalf("student not reactivated: %q", got.Status)
	}
}

func TestRenewEndpointNotFound(t *testing.T) {
	conn := setupTestDB(t)
	h := NewStudentHandler(conn)

	rec := postJSON(t, h.renew, "/students/renew", map[string]string{
		"id": "ghost", "paymentDate": "2024-02-10", "paymentMethod": "PIX",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if code := errorCode(t, rec); code != "student_not_found" {
		t.Fatalf("error = %q", code)
	}
}

func TestStudentDeleteEndpoint(t *testing.T) {
	conn := setupTestDB(t)
	h := NewStudentHandler(conn)
	plan := seedPlan(t, conn, "Mensal", 100, 30)
	student := models.Student{Name: "Ana", Whatsapp: "1", PlanID: plan.ID, Status: models.StatusActive}
	if err := conn.Create(&student).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := postJSON(t, h.delete, "/students/delete", map[string]string{"id": student.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	var count int64
	conn.Model(&models.Student{}).Count(&count)
	if count != 0 {
		t.Fatal("student still present")
	}
}
