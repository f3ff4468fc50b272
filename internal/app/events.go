// Package app wires the portal services together and defines the in-process
// event topics they communicate over.
package app

const TopicAuthLogin = "auth:login"
const TopicAuthLogout = "auth:logout"
const TopicAuthSignup = "auth:signup"
const TopicCartUpdated = "cart:updated"
const TopicOrderPlaced = "order:placed"
const TopicContactSubmitted = "contact:submitted"
