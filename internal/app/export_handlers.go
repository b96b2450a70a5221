package app

import (
	"mime"
	"net/http"

	"github.com/lingvodom/school-api/internal/apperr"
	"github.com/lingvodom/school-api/internal/export"
)

// handleExportGrades отдаёт xlsx-файл со всеми оценками, по листу на группу.
func (s *Server) handleExportGrades(w http.ResponseWriter, r *http.Request) {
	marks, err := s.grading.AllMarks(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	wb, err := export.NewGradesWorkbook(marks)
	if err != nil {
		s.writeErr(w, r, apperr.Internal(err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename()}))
	if err := wb.WriteTo(w); err != nil {
		s.log.Errorw("write workbook", "err", err)
	}
}
