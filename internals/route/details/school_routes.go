package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	assignmentController "kelasku_backend/internals/features/school/assignments/controller"
	classController "kelasku_backend/internals/features/school/classes/controller"
	folderController "kelasku_backend/internals/features/school/folders/controller"
	gradeController "kelasku_backend/internals/features/school/grades/controller"
	moduleController "kelasku_backend/internals/features/school/modules/controller"
	submissionController "kelasku_backend/internals/features/school/submissions/controller"
)

// SchoolUserRoutes: akses baca untuk semua user login + alur praktikan
// (kumpul tugas, lihat nilai sendiri).
func SchoolUserRoutes(r fiber.Router, db *gorm.DB) {
	classCtrl := classController.NewClassController(db)
	moduleCtrl := moduleController.NewModuleController(db)
	folderCtrl := folderController.NewFolderController(db)
	assignmentCtrl := assignmentController.NewAssignmentController(db)
	submissionCtrl := submissionController.NewSubmissionController(db)
	gradeCtrl := gradeController.NewGradeController(db)

	// Classes
	r.Get("/classes", classCtrl.List)
	r.Get("/classes/:id", classCtrl.GetByID)
	r.Get("/classes/:class_id/modules", moduleCtrl.ListByClass)

	// Modules
	r.Get("/modules/:id", moduleCtrl.GetByID)
	r.Get("/modules/:module_id/folders", folderCtrl.ListByModule)
	r.Get("/modules/:module_id/assignments", assignmentCtrl.ListByModule)

	// Assignments & submissions
	r.Get("/assignments/:id", assignmentCtrl.GetByID)
	r.Post("/assignments/:assignment_id/submissions", submissionCtrl.Submit)
	r.Get("/submissions/mine", submissionCtrl.Mine)

	// Grades
	r.Get("/grades/mine", gradeCtrl.Mine)
}

// SchoolAdminRoutes: mutasi konten kelas, khusus aslab.
func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	classCtrl := classController.NewClassController(db)
	moduleCtrl := moduleController.NewModuleController(db)
	folderCtrl := folderController.NewFolderController(db)
	assignmentCtrl := assignmentController.NewAssignmentController(db)
	submissionCtrl := submissionController.NewSubmissionController(db)
	gradeCtrl := gradeController.NewGradeController(db)

	// Classes
	r.Post("/classes", classCtrl.Create)
	r.Put("/classes/:id", classCtrl.Update)
	r.Delete("/classes/:id", classCtrl.Delete)

	// Modules
	r.Post("/modules", moduleCtrl.Create)
	r.Put("/modules/:id", moduleCtrl.Update)
	r.Delete("/modules/:id", moduleCtrl.Delete)

	// Folders
	r.Post("/folders", folderCtrl.Create)
	r.Put("/folders/:id", folderCtrl.Update)
	r.Delete("/folders/:id", folderCtrl.Delete)

	// Assignments
	r.Post("/assignments", assignmentCtrl.Create)
	r.Put("/assignments/:id", assignmentCtrl.Update)
	r.Delete("/assignments/:id", assignmentCtrl.Delete)

	// Submissions & grading
	r.Get("/assignments/:assignment_id/submissions", submissionCtrl.ListByAssignment)
	r.Put("/submissions/:submission_id/grade", gradeCtrl.SetGrade)
	r.Get("/submissions/:submission_id/grade", gradeCtrl.GetBySubmission)
}
