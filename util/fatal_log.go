package util

import (
	"os"
	"time"
)

func openFatalLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, err
	}
	f.WriteString("\n" + time.Now().Format("2006-01-02 15:04:05") + "--------------------------------\n")
	return f, nil
}
