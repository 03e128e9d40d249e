package csvio

import (
	"fmt"
	"io"

	"github.com/limaJavier/tarequests/pkg/model"
)

// WriteReport writes one report row per request
func WriteReport(out io.Writer, requests []*model.Request) error {
	for _, request := range requests {
		if _, err := fmt.Fprintln(out, request.String()); err != nil {
			return fmt.Errorf("cannot write request %v: %w", request.Id(), err)
		}
	}
	return nil
}
