package render

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/kernelstats/softnet-stat/softnet"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON prints the record sequence as a JSON array. Optional counters
// the kernel did not report are omitted, so decoding the output
// recovers the same field presence the parser saw.
func JSON(w io.Writer, stats []softnet.SoftnetStat) error {
	bs, err := json.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "failed to encode stats into json format")
	}

	_, err = fmt.Fprintln(w, string(bs))
	return err
}
