package server

import (
	"net/http"

	"app/internal/config"

	"github.com/labstack/echo/v4"
)

// handlerまで届かなかったerror（404/405/panic recover後など）の整形
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// newHTTPErrorHandlerはechoのデフォルトエラー整形を置き換える
// stack traceや内部情報は出さない。500の詳細はproduction以外のみ
func newHTTPErrorHandler(cfg config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		} else if !cfg.IsProduction() {
			//開発中だけ例外の中身を見せる
			message = err.Error()
		}

		requestID := c.Response().Header().Get(echo.HeaderXRequestID)

		body := errorBody{Error: errorDetail{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		}}

		if jsonErr := c.JSON(code, body); jsonErr != nil {
			c.Logger().Error(jsonErr)
		}
	}
}
