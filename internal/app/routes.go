package app

import (
	"github.com/vancomm/puzzle-server/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.logger, a.db, a.cookies, a.ws)
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)

	a.router.HandleFunc("GET /puzzles", game.List)
	a.router.HandleFunc("POST /g/{name}", game.Create)
	a.router.HandleFunc("GET /g/{name}/{id}", game.Fetch)
	a.router.HandleFunc("POST /g/{name}/{id}/move", game.Move)
	a.router.HandleFunc("POST /g/{name}/{id}/solve", game.Solve)
	a.router.HandleFunc("POST /g/{name}/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("GET /g/{name}/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET /records", game.Records)

	a.router.HandleFunc("GET /status", auth.Status)
	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
}
