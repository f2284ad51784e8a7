package messaging

type RequestHandler[Req any, Res any] interface {
	Handle(req Req) (Res, error)
}
