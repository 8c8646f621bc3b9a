package blockchain

import (
	"net/http"
	"reflect"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/repository/postgres/blockchain"
)

type Controller struct {
	blockchain Blockchain
}

func NewController(blockchain Blockchain) *Controller {
	return &Controller{blockchain}
}

func (uc Controller) Store(c *web.Context) error {
	var request blockchain.StoreRequest

	if err := c.BindFunc(&request, "PayrollEntryID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.blockchain.Store(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) StoreBatch(c *web.Context) error {
	var request blockchain.BatchStoreRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.blockchain.StoreBatch(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Verify(c *web.Context) error {
	var request blockchain.VerifyRequest

	if err := c.BindFunc(&request, "PayrollEntryID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.blockchain.Verify(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetRecord(c *web.Context) error {
	hash := c.GetParam(reflect.String, "transactionHash").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.blockchain.GetRecord(c.Ctx, hash)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   map[string]interface{}{"record": response},
		"status": true,
	}, http.StatusOK)
}
