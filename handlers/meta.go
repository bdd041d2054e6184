package handlers

import (
	"net/http"

	"github.com/dolevhayut/mineral-gas-sub001/models"
	"github.com/dolevhayut/mineral-gas-sub001/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo returns the order lifecycle for documentation
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}

	var terminal []models.OrderStatus
	for _, s := range []models.OrderStatus{
		models.StatusPending, models.StatusProcessing,
		models.StatusCompleted, models.StatusCancelled,
	} {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": terminal,
		"description":     "Gas Delivery Order Lifecycle State Machine",
	})
}
