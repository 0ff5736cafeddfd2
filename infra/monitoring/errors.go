package monitoring

import "errors"

var errSampleRate = errors.New("sentry.traces_sample_rate must be between 0 and 1")
