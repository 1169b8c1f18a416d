package render

import (
	"os"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
)

// SourceDateEpochEnv pins the build time for reproducible output.
const SourceDateEpochEnv = "SOURCE_DATE_EPOCH"

// ResolveYear returns the build year: flag when non-zero, else the UTC year of
// SOURCE_DATE_EPOCH, else the current UTC year.
func ResolveYear(flag int) (int, error) {
	if flag != 0 {
		if flag < 1970 || flag > 9999 {
			return 0, errors.ValidationError("year out of range").WithContext("year", flag).Build()
		}
		return flag, nil
	}
	if raw := strings.TrimSpace(os.Getenv(SourceDateEpochEnv)); raw != "" {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, errors.WrapError(err, errors.CategoryValidation, "invalid "+SourceDateEpochEnv).
				WithContext("value", raw).
				Build()
		}
		return time.Unix(secs, 0).UTC().Year(), nil
	}
	return time.Now().UTC().Year(), nil
}
