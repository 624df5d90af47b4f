package controllers

import (
	"encoding/json"
	"net/http"

	"requestpay.com/payment-contract/common"
	"requestpay.com/payment-contract/log"
)

type ResponseMessage struct {
	Status int
	Data   interface{}
}

func Message(message string) ResponseMessage {
	msg := ResponseMessage{
		Status: http.StatusOK,
		Data:   map[string]interface{}{"message": message},
	}

	return msg
}

func MessageWithStatus(status int, message string) ResponseMessage {
	msg := ResponseMessage{
		Status: status,
		Data:   map[string]interface{}{"message": message},
	}

	return msg
}

func Respond(w http.ResponseWriter, data interface{}) {

	w.Header().Add("Content-Type", "application/json")

	var err error

	switch res := data.(type) {
	case ResponseMessage:

		w.WriteHeader(res.Status)
		err = json.NewEncoder(w).Encode(res.Data)

	case common.HttpErrorMessage:

		err = res.WriteHttpError(w)

	default:
		w.WriteHeader(http.StatusOK)
		err = json.NewEncoder(w).Encode(data)
	}

	if err != nil {
		log.Errorf("Error encoding data for response: %v", err.Error())
	}
}
