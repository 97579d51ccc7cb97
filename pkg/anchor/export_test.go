package anchor

var Monotone = monotone
var Chain = chain
