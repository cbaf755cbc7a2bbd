package tick

var NextDelay = nextDelay
