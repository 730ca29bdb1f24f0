package iclass

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const statusOK = "0"

// status accepts both "0" and 0; the service is not consistent about it.
type status string

func (s *status) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = status(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*s = status(strconv.FormatInt(i, 10))
		return nil
	}
	*s = status(n.String())
	return nil
}

type envelope struct {
	Status   *status         `json:"STATUS"`
	ErrorMsg string          `json:"ERRORMSG"`
	Result   json.RawMessage `json:"result"`
}

func (e envelope) ok() bool {
	return e.Status != nil && string(*e.Status) == statusOK
}

func (e envelope) hasResult() bool {
	r := bytes.TrimSpace(e.Result)
	return len(r) > 0 && !bytes.Equal(r, []byte("null"))
}

type loginResult struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
}

// Course is one row of the schedule endpoint as the service returns it.
type Course struct {
	ID             string `json:"id"`
	CourseName     string `json:"courseName"`
	ClassBeginTime string `json:"classBeginTime"`
	ClassEndTime   string `json:"classEndTime"`
	ClassroomName  string `json:"classroomName"`
	TeacherName    string `json:"teacherName"`
}
