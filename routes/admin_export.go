package routes

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"hostelhub-server/config"
	"hostelhub-server/services"
	"hostelhub-server/storage"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/xuri/excelize/v2"
)

type exportJob struct {
	ID        string `json:"id"`
	Resource  string `json:"resource"`
	Status    string `json:"status"` // pending, processing, done, failed
	Error     string `json:"error,omitempty"`
	CreatedAt int64  `json:"created_at"`

	file *bytes.Buffer
}

var (
	exportJobs   = map[string]*exportJob{}
	exportJobsMu sync.Mutex
)

// POST /admin/export { resource: string, hostelID: uint }
func AdminCreateExport(ctx iris.Context) {
	var body struct {
		Resource string `json:"resource"`
		HostelID uint   `json:"hostelID"`
	}
	if err := ctx.ReadJSON(&body); err != nil || (body.Resource != "payments" && body.Resource != "expenses") {
		ctx.StatusCode(http.StatusUnprocessableEntity)
		ctx.JSON(iris.Map{"error": "invalid_payload", "message": "resource must be payments or expenses"})
		return
	}

	id := uuid.NewString()
	job := &exportJob{ID: id, Resource: body.Resource, Status: "pending", CreatedAt: time.Now().Unix()}
	exportJobsMu.Lock()
	exportJobs[id] = job
	exportJobsMu.Unlock()

	go runExport(job, body.HostelID)

	ctx.JSON(iris.Map{"data": iris.Map{"id": id, "status": job.Status}})
}

func runExport(job *exportJob, hostelID uint) {
	setJobStatus(job, "processing", "")

	var workbook *excelize.File
	var err error
	switch job.Resource {
	case "payments":
		workbook, err = services.BuildPaymentsWorkbook(storage.DB, hostelID)
	case "expenses":
		workbook, err = services.BuildExpensesWorkbook(storage.DB, hostelID)
	}
	if err != nil {
		config.LogError("routes", "runExport", job.Resource, job.ID, err)
		setJobStatus(job, "failed", err.Error())
		return
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		config.LogError("routes", "runExport", "write buffer", job.ID, err)
		setJobStatus(job, "failed", err.Error())
		return
	}

	exportJobsMu.Lock()
	job.file = buf
	job.Status = "done"
	exportJobsMu.Unlock()
}

func setJobStatus(job *exportJob, status, errMsg string) {
	exportJobsMu.Lock()
	job.Status = status
	job.Error = errMsg
	exportJobsMu.Unlock()
}

// snapshotExportJob copies a job's fields while holding the lock so readers
// never hand the encoder a struct the worker goroutine is still writing.
func snapshotExportJob(id string) (exportJob, []byte, bool) {
	exportJobsMu.Lock()
	defer exportJobsMu.Unlock()
	job, ok := exportJobs[id]
	if !ok {
		return exportJob{}, nil, false
	}
	snap := exportJob{
		ID:        job.ID,
		Resource:  job.Resource,
		Status:    job.Status,
		Error:     job.Error,
		CreatedAt: job.CreatedAt,
	}
	var file []byte
	if job.file != nil {
		file = job.file.Bytes()
	}
	return snap, file, true
}

// GET /admin/export/:id
func AdminGetExport(ctx iris.Context) {
	id := ctx.Params().GetString("id")
	job, _, ok := snapshotExportJob(id)
	if !ok {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"error": "not_found", "message": "job not found"})
		return
	}
	ctx.JSON(iris.Map{"data": job})
}

// GET /admin/export/:id/download
func AdminDownloadExport(ctx iris.Context) {
	id := ctx.Params().GetString("id")
	job, file, ok := snapshotExportJob(id)
	if !ok {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"error": "not_found", "message": "job not found"})
		return
	}
	if job.Status != "done" || file == nil {
		ctx.StatusCode(http.StatusConflict)
		ctx.JSON(iris.Map{"error": "not_ready", "message": "export is " + job.Status})
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+job.Resource+"-"+id+`.xlsx"`)
	ctx.ContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Write(file)
}
