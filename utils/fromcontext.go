package utils

import (
	"net/http"

	"tienda/globals"
)

func GetMerchantIDFromRequest(r *http.Request) string {
	id, ok := r.Context().Value(globals.MerchantIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

func GetStoreIDFromRequest(r *http.Request) string {
	id, ok := r.Context().Value(globals.StoreIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
