package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mountify/services/user"
)

const maxDocumentBytes = 10 << 20

// ApplyWorkerHandler accepts a worker application as multipart form data
// with optional identity/insurance documents.
func (hb *HandlerBundle) ApplyWorkerHandler(c *gin.Context) {
	var input user.WorkerApplicationInput
	input.Email = c.PostForm("email")
	input.Name = c.PostForm("name")
	input.Phone = c.PostForm("phone")
	input.ZipCodes = c.PostFormArray("zipCodes")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form", "details": err.Error()})
		return
	}

	var docs [][]byte
	for _, fh := range form.File["documents"] {
		if fh.Size > maxDocumentBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "document too large", "file": fh.Filename})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable document", "file": fh.Filename})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable document", "file": fh.Filename})
			return
		}
		docs = append(docs, data)
	}

	app, err := hb.Users.SubmitWorkerApplication(c.Request.Context(), input, docs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ApproveApplicationHandler turns a submitted application into a worker
// account. Admin only.
func (hb *HandlerBundle) ApproveApplicationHandler(c *gin.Context) {
	worker, err := hb.Users.ApproveWorkerApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application approved", "worker": worker})
}

// RejectApplicationHandler declines a submitted application. Admin only.
func (hb *HandlerBundle) RejectApplicationHandler(c *gin.Context) {
	if err := hb.Users.RejectWorkerApplication(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application rejected"})
}
