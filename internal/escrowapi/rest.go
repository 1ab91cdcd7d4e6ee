package escrowapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/julienschmidt/httprouter"

	"github.com/tos-network/gescrow/asset"
)

// NewHandler returns the HTTP handler of the ledger: JSON-RPC on POST / and
// read-only REST routes under /v1. The dev_* namespace is registered only if
// dev is set.
func NewHandler(b Backend, dev bool) (http.Handler, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("escrow", NewEscrowAPI(b)); err != nil {
		return nil, err
	}
	if dev {
		if err := srv.RegisterName("dev", NewDevAPI(b)); err != nil {
			return nil, err
		}
	}
	rest := &restAPI{api: NewEscrowAPI(b), b: b}

	router := httprouter.New()
	router.Handler(http.MethodPost, "/", srv)
	router.GET("/v1/head", rest.head)
	router.GET("/v1/config", rest.config)
	router.GET("/v1/stakes", rest.stakes)
	router.GET("/v1/stakes/:account", rest.stake)
	router.GET("/v1/fees/:asset", rest.fee)
	return router, nil
}

type restAPI struct {
	api *EscrowAPI
	b   Backend
}

type restHead struct {
	Root        common.Hash    `json:"root"`
	Committed   hexutil.Uint64 `json:"committed"`
	BlockNumber hexutil.Uint64 `json:"blockNumber"`
}

func (r *restAPI) head(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	head := r.b.Head()
	writeJSON(w, http.StatusOK, restHead{
		Root:        head.Root,
		Committed:   hexutil.Uint64(head.Block),
		BlockNumber: r.api.BlockNumber(req.Context()),
	})
}

func (r *restAPI) config(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, r.api.Config(req.Context()))
}

func (r *restAPI) stakes(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, r.api.Stakes(req.Context()))
}

func (r *restAPI) stake(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	account := ps.ByName("account")
	if !common.IsHexAddress(account) {
		writeError(w, http.StatusBadRequest, errors.New("invalid account address"))
		return
	}
	writeJSON(w, http.StatusOK, r.api.GetStake(req.Context(), common.HexToAddress(account)))
}

func (r *restAPI) fee(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	class, err := asset.ParseClass(ps.ByName("asset"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	fee, err := r.b.Escrow().ReservedFee(class)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"asset":    class,
		"reserved": (*hexutil.Big)(fee),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("Failed to write REST response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
