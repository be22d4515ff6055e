package observability

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/facebookincubator/go-belt/pkg/field"
)

// FieldPID is the field value type for process ID
type FieldPID int

// FieldUID is the field value type for user ID
type FieldUID int

// FieldUsername is the field value type for user name
type FieldUsername string

// FieldHostname is the field value type for hostname
type FieldHostname string

// DefaultFields returns the fields identifying the process, attached
// to every log entry.
func DefaultFields() field.Fields {
	result := field.Fields{
		{Key: "pid", Value: FieldPID(os.Getpid())},
		{Key: "uid", Value: FieldUID(os.Getuid())},
		{Key: "tool", Value: filepath.Base(os.Args[0])},
	}
	if curUser, _ := user.Current(); curUser != nil {
		result = append(result, field.Field{
			Key:   "username",
			Value: FieldUsername(curUser.Username),
		})
	}
	if hostname, err := os.Hostname(); err == nil {
		result = append(result, field.Field{
			Key:   "hostname",
			Value: FieldHostname(hostname),
		})
	}
	return result
}
