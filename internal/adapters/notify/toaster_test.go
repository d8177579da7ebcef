package notify_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"go.trai.ch/depot/internal/adapters/notify"
)

func TestToaster(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	toaster := notify.NewToaster(buf)

	toaster.Success("Product created")
	toaster.Error("Mã sản phẩm đã tồn tại")
	toaster.SetQuiet(true)
	toaster.Success("hidden")
	toaster.Error("Could not delete warehouse")

	g := goldie.New(t)
	g.Assert(t, "toasts", buf.Bytes())
}
