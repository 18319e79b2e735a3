package files

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	file "filmoasis/src/modules/files/services"
	"filmoasis/src/utils"
)

type Opener interface {
	Open(ctx context.Context, filePath string) (*file.Object, error)
}

type FileController struct {
	store Opener
}

func NewFileController(store Opener) *FileController {
	return &FileController{store: store}
}

// Static streams a mirrored artwork object.
func (f *FileController) Static(c *gin.Context) {
	filepath := c.Param("filepath")
	if filepath == "" || filepath == "/" {
		utils.RespondError(c, utils.Invalid("Invalid file path"))
		return
	}

	obj, err := f.store.Open(c.Request.Context(), filepath)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer obj.Reader.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Reader, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}
