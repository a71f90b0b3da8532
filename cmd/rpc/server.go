package rpc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/govboard-network/govboard/gov"
	"github.com/govboard-network/govboard/lib"
	"github.com/govboard-network/govboard/store"
	"github.com/govboard-network/govboard/wallet"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

const (
	colon = ":"

	SoftwareVersion = "0.1.0-alpha"
	ContentType     = "Content-Type"
	ApplicationJSON = "application/json; charset=utf-8"
)

// Server represents a govboard RPC server with configuration options.
type Server struct {
	// govboard backend configuration
	config lib.Config

	// the chain the backend builds proposals for
	chain *wallet.ChainContext

	// in-progress proposal drafts, persisted to the data directory
	drafts *gov.Drafts

	// named signer addresses, persisted to the data directory
	addressBook *wallet.AddressBook

	// the transaction history
	txStore *store.TxStore

	// the submission endpoint
	broadcaster wallet.BroadcasterI

	logger lib.LoggerI
}

// NewServer constructs and returns a new govboard RPC server
func NewServer(config lib.Config, db lib.StoreI, broadcaster wallet.BroadcasterI, logger lib.LoggerI) (*Server, lib.ErrorI) {
	chain, err := wallet.NewChainContext(config.ChainId)
	if err != nil {
		return nil, err
	}
	drafts, err := gov.NewDraftsFromFile(config.DataDirPath)
	if err != nil {
		return nil, err
	}
	addressBook, err := wallet.NewAddressBookFromFile(config.DataDirPath)
	if err != nil {
		return nil, err
	}
	return &Server{
		config:      config,
		chain:       chain,
		drafts:      drafts,
		addressBook: addressBook,
		txStore:     store.NewTxStore(db, logger),
		broadcaster: broadcaster,
		logger:      logger,
	}, nil
}

// Start initializes the govboard RPC servers
func (s *Server) Start() {
	// Start the query RPC server
	go s.startRPC(createRouter(s), s.config.RPCPort)

	// A headless backend serves queries only
	if s.config.Headless {
		return
	}

	// Start the admin RPC server
	go s.startRPC(createAdminRouter(s), s.config.AdminPort)
}

// startRPC starts an RPC server with the provided router and port
func (s *Server) startRPC(router *httprouter.Router, port string) {

	// Create CORS policy
	cor := cors.New(cors.Options{
		AllowedOrigins: strings.Split(s.config.AllowedOrigins, ","),
		AllowedMethods: []string{"GET", "OPTIONS", "POST"},
	})

	// Create a default timeout for HTTP requests
	timeout := time.Duration(s.config.TimeoutS) * time.Second

	// Start RPC server
	s.logger.Infof("Starting RPC server at 0.0.0.0:%s", port)
	s.logger.Fatal((&http.Server{
		Addr:    colon + port,
		Handler: cor.Handler(http.TimeoutHandler(router, timeout, lib.ErrServerTimeout().Error())),
	}).ListenAndServe().Error())
}

// saveDrafts persists the draft collection and writes http response on failure
func (s *Server) saveDrafts(w http.ResponseWriter) (ok bool) {
	if err := s.drafts.SaveToFile(s.config.DataDirPath); err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	return true
}

// saveAddressBook persists the address book and writes http response on failure
func (s *Server) saveAddressBook(w http.ResponseWriter) (ok bool) {
	if err := s.addressBook.SaveToFile(s.config.DataDirPath); err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	return true
}

// logsHandler writes the govboard logfile, newest lines first
func logsHandler(s *Server) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {

		// Construct the full file path to the govboard log file
		filePath := filepath.Join(s.config.DataDirPath, lib.LogDirectory, lib.LogFileName)

		// Read the entire contents of the log file and split by newlines
		f, _ := os.ReadFile(filePath)
		split := bytes.Split(f, []byte("\n"))

		// Prepare a slice to hold the reversed lines
		var flipped []byte

		// Iterate over the lines in reverse order
		for i := len(split) - 1; i >= 0; i-- {
			// Append each line to the `flipped` slice followed by a newline character
			flipped = append(append(flipped, split[i]...), []byte("\n")...)
		}

		// Write the reversed lines to the HTTP response
		if _, err := w.Write(flipped); err != nil {
			s.logger.Error(err.Error())
		}
	}
}

// logHandler serves as a middleware that logs incoming RPC calls for debugging purposes.
type logHandler struct {
	path string
	h    httprouter.Handle
}

// Handle
func (h logHandler) Handle(resp http.ResponseWriter, req *http.Request, p httprouter.Params) {
	// Uncomment the line below to enable endpoint path logging for debugging.
	// logger.Debug(h.path)

	// Call the actual handler function with the response, request, and parameters.
	h.h(resp, req, p)
}

// unmarshal reads request body and unmarshals it into ptr
func (s *Server) unmarshal(w http.ResponseWriter, r *http.Request, ptr interface{}) bool {
	bz, err := io.ReadAll(io.LimitReader(r.Body, s.config.MaxRequestBytes()))
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return false
	}
	defer func() { _ = r.Body.Close() }()
	if err = json.Unmarshal(bz, ptr); err != nil {
		write(w, err, http.StatusBadRequest)
		return false
	}
	return true
}

// write marshaled payload to w
func write(w http.ResponseWriter, payload interface{}, code int) {
	w.Header().Set(ContentType, ApplicationJSON)
	w.WriteHeader(code)

	// Marshal and indent the payload
	bz, _ := json.MarshalIndent(payload, "", "  ")
	if _, err := w.Write(bz); err != nil {
		lib.NewDefaultLogger().Error(err.Error())
	}
}

// writeErr writes a typed error with the HTTP status derived from its module
func writeErr(w http.ResponseWriter, err lib.ErrorI) {
	code := http.StatusBadRequest
	switch {
	case (err.Code() == lib.CodeUnknownParamKey || err.Code() == lib.CodeUnknownModule) && err.Module() == lib.GovernanceModule:
		code = http.StatusNotFound
	case err.Code() == lib.CodeUnknownTx && err.Module() == lib.StoreModule:
		code = http.StatusNotFound
	}
	write(w, err, code)
}
