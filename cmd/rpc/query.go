package rpc

import (
	"net/http"

	"github.com/govboard-network/govboard/gov"
	"github.com/govboard-network/govboard/lib"
	"github.com/julienschmidt/httprouter"
)

// Version returns the backend software version and the target chain
func (s *Server) Version(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, versionResponse{Version: SoftwareVersion, ChainId: s.chain.ChainId}, http.StatusOK)
}

// Chain returns the full chain context the backend builds proposals for
func (s *Server) Chain(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, s.chain, http.StatusOK)
}

// Modules returns every governed module with its keys and message type urls
func (s *Server) Modules(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	infos := make([]moduleInfo, 0, len(gov.ModuleNames()))
	for _, set := range gov.ParamSets() {
		typeURLs, err := set.Module().MessageTypeURLs()
		if err != nil {
			writeErr(w, err)
			return
		}
		infos = append(infos, moduleInfo{Module: set.Module(), Keys: set.Keys(), TypeURLs: typeURLs})
	}
	write(w, infos, http.StatusOK)
}

// Params returns the form view of a module: the saved draft when one exists,
// otherwise the registry defaults
func (s *Server) Params(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(moduleRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	draft, err := s.drafts.Get(request.Module)
	if err != nil {
		// no saved draft, render the defaults through an empty one
		if draft, err = gov.NewProposalDraft(request.Module); err != nil {
			writeErr(w, err)
			return
		}
	}
	fields, err := draft.FieldStates()
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, paramsResponse{Module: request.Module, Fields: fields}, http.StatusOK)
}

// Validate checks a single raw field value against its descriptor
func (s *Server) Validate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(fieldRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	set, err := gov.ParamSetFor(request.Module)
	if err != nil {
		writeErr(w, err)
		return
	}
	descriptor, err := set.Get(request.Key)
	if err != nil {
		writeErr(w, err)
		return
	}
	value, err := gov.ValidateField(descriptor, request.Value)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, validateResponse{Key: request.Key, Value: value}, http.StatusOK)
}

// TransactionByHash returns a recorded envelope by its hex hash
func (s *Server) TransactionByHash(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(hashRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	// decode then re-encode so a malformed hash fails here and a mixed case
	// hash still hits the store's lowercase key
	hash, err := lib.NewHexBytesFromString(request.Hash)
	if err != nil {
		writeErr(w, err)
		return
	}
	tx, err := s.txStore.GetByHash(hash.String())
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, tx, http.StatusOK)
}

// Transactions returns a page of the transaction history
func (s *Server) Transactions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(txsRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	page, err := s.txStore.GetPage(lib.PageParams{
		PageNumber: request.PageNumber,
		PerPage:    request.PerPage,
	}, request.NewestFirst)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, page, http.StatusOK)
}
