package http

import (
	"net/http"

	"github.com/klwxsrx/go-storefront/pkg/log"
)

const requestLogEntry = "httpRequest"

func getRequestFieldsLogger(r *http.Request, logger log.Logger) log.Logger {
	return logger.With(wrapFieldsWithRequestLogEntry(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}))
}

func getRequestResponseFieldsLogger(r *http.Request, code int, logger log.Logger) log.Logger {
	fields := log.Fields{"code": code}
	if r != nil {
		fields["method"] = r.Method
		fields["path"] = r.URL.Path
	}

	return logger.With(wrapFieldsWithRequestLogEntry(fields))
}

func wrapFieldsWithRequestLogEntry(fields log.Fields) log.Fields {
	return log.Fields{requestLogEntry: fields}
}
