package common

import (
	"fmt"
	"io"
	"net/http"
)

func Error(status int, msg string) error {
	return &httpErrorMessage{
		Status: status,
		msg:    msg,
	}
}

type HttpErrorMessage interface {
	WriteHttpError(wr http.ResponseWriter) error
	Error() string
}

type httpErrorMessage struct {
	Status int
	msg    string
}

func (hem *httpErrorMessage) Error() string {
	return hem.msg
}

func (hem *httpErrorMessage) WriteHttpError(wr http.ResponseWriter) error {
	wr.WriteHeader(hem.Status)
	_, err := fmt.Fprint(wr, hem.Error())
	return err
}

func HttpPostWithoutResponse(url string, body io.Reader) error {
	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}

	return res.Body.Close()
}
